package navigation

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestNavigation(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Navigation Module Suite")
}

func allowAll(string) bool { return true }
func denyAll(string) bool  { return false }
func itemIDs(items []NavItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

var _ = ginkgo.Describe("FilterByAccess", func() {
	ginkgo.Context("permission gates", func() {
		ginkgo.It("always enforces permission gates, even with empty context", func() {
			items := []NavItem{
				{ID: "invoices", Path: "/invoices", RequiresPermission: "invoice:read"},
				{ID: "dashboard", Path: "/dashboard"},
			}

			filtered := FilterByAccess(items, "", "", denyAll)

			gomega.Expect(itemIDs(filtered)).To(gomega.Equal([]string{"dashboard"}))
		})

		ginkgo.It("keeps permission-gated items when the grant exists", func() {
			items := []NavItem{
				{ID: "invoices", Path: "/invoices", RequiresPermission: "invoice:read"},
			}
			hasInvoiceRead := func(p string) bool { return p == "invoice:read" }

			filtered := FilterByAccess(items, "member", TierStarter, hasInvoiceRead)

			gomega.Expect(itemIDs(filtered)).To(gomega.Equal([]string{"invoices"}))
		})
	})

	ginkgo.Context("role and tier gates with unknown context", func() {
		ginkgo.It("skips the role gate when the role is empty", func() {
			items := []NavItem{
				{ID: "settings-company", Path: "/settings/company", RequiresRole: []string{"owner", "admin"}},
			}

			filtered := FilterByAccess(items, "", TierStarter, allowAll)

			gomega.Expect(itemIDs(filtered)).To(gomega.Equal([]string{"settings-company"}))
		})

		ginkgo.It("skips the tier gate when the tier is empty", func() {
			items := []NavItem{
				{ID: "analytics", Path: "/analytics", RequiresSubscription: []Tier{TierProfessional, TierEnterprise}},
			}

			filtered := FilterByAccess(items, "member", "", allowAll)

			gomega.Expect(itemIDs(filtered)).To(gomega.Equal([]string{"analytics"}))
		})

		ginkgo.It("enforces the role gate once a role is known", func() {
			items := []NavItem{
				{ID: "settings-company", Path: "/settings/company", RequiresRole: []string{"owner", "admin"}},
				{ID: "settings-profile", Path: "/settings/profile"},
			}

			filtered := FilterByAccess(items, "member", TierStarter, allowAll)

			gomega.Expect(itemIDs(filtered)).To(gomega.Equal([]string{"settings-profile"}))
		})

		ginkgo.It("enforces the tier gate once a tier is known", func() {
			items := []NavItem{
				{ID: "analytics", Path: "/analytics", RequiresSubscription: []Tier{TierProfessional, TierEnterprise}},
				{ID: "reports", Path: "/reports", RequiresSubscription: []Tier{TierStarter, TierProfessional, TierEnterprise}},
			}

			filtered := FilterByAccess(items, "member", TierStarter, allowAll)

			gomega.Expect(itemIDs(filtered)).To(gomega.Equal([]string{"reports"}))
		})
	})

	ginkgo.Context("children", func() {
		ginkgo.It("filters children recursively and drops pathless parents left empty", func() {
			items := []NavItem{
				{
					ID:    "financial",
					Label: "Financial",
					Children: []NavItem{
						{ID: "invoices", Path: "/invoices", RequiresPermission: "invoice:read"},
						{ID: "customers", Path: "/customers", RequiresPermission: "customer:read"},
					},
				},
			}

			filtered := FilterByAccess(items, "member", TierStarter, denyAll)

			gomega.Expect(filtered).To(gomega.BeEmpty())
		})

		ginkgo.It("keeps an emptied parent that has its own path", func() {
			items := []NavItem{
				{
					ID:   "financial",
					Path: "/financial",
					Children: []NavItem{
						{ID: "invoices", Path: "/invoices", RequiresPermission: "invoice:read"},
					},
				},
			}

			filtered := FilterByAccess(items, "member", TierStarter, denyAll)

			gomega.Expect(itemIDs(filtered)).To(gomega.Equal([]string{"financial"}))
			gomega.Expect(filtered[0].Children).To(gomega.BeEmpty())
		})

		ginkgo.It("preserves sibling order", func() {
			items := []NavItem{
				{ID: "a", Path: "/a"},
				{ID: "b", Path: "/b", RequiresPermission: "x"},
				{ID: "c", Path: "/c"},
				{ID: "d", Path: "/d"},
			}

			filtered := FilterByAccess(items, "", "", denyAll)

			gomega.Expect(itemIDs(filtered)).To(gomega.Equal([]string{"a", "c", "d"}))
		})
	})

	ginkgo.Context("idempotence", func() {
		ginkgo.It("returns the same forest when applied twice with the same context", func() {
			built := UserNavigation(TierProfessional, "member", true)
			hasSome := func(p string) bool { return p == "invoice:read" || p == "payment:read" }

			once := FilterByAccess(built.Items, "member", TierProfessional, hasSome)
			twice := FilterByAccess(once, "member", TierProfessional, hasSome)

			gomega.Expect(twice).To(gomega.Equal(once))
		})
	})
})
