package navigation

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Navigation builder", func() {
	ginkgo.Describe("UserNavigation", func() {
		ginkgo.It("returns only the dashboard when the person has no company", func() {
			cfg := UserNavigation(TierEnterprise, "owner", false)

			gomega.Expect(itemIDs(cfg.Items)).To(gomega.Equal([]string{"dashboard"}))
		})

		ginkgo.It("includes dashboard and financial for every tier", func() {
			for _, tier := range []Tier{"", TierStarter, TierProfessional, TierEnterprise} {
				cfg := UserNavigation(tier, "member", true)
				ids := itemIDs(cfg.Items)

				gomega.Expect(ids).To(gomega.ContainElement("dashboard"))
				gomega.Expect(ids).To(gomega.ContainElement("financial"))
			}
		})

		ginkgo.It("withholds the reports section from an unknown tier", func() {
			cfg := UserNavigation("", "member", true)

			gomega.Expect(itemIDs(cfg.Items)).NotTo(gomega.ContainElement("reports-section"))
		})

		ginkgo.It("grants sections cumulatively by tier", func() {
			starter := itemIDs(UserNavigation(TierStarter, "member", true).Items)
			professional := itemIDs(UserNavigation(TierProfessional, "member", true).Items)
			enterprise := itemIDs(UserNavigation(TierEnterprise, "member", true).Items)

			gomega.Expect(starter).To(gomega.ContainElement("reports-section"))
			gomega.Expect(starter).NotTo(gomega.ContainElement("advanced"))
			gomega.Expect(starter).NotTo(gomega.ContainElement("enterprise"))

			gomega.Expect(professional).To(gomega.ContainElement("reports-section"))
			gomega.Expect(professional).To(gomega.ContainElement("advanced"))
			gomega.Expect(professional).NotTo(gomega.ContainElement("enterprise"))

			gomega.Expect(enterprise).To(gomega.ContainElement("reports-section"))
			gomega.Expect(enterprise).To(gomega.ContainElement("advanced"))
			gomega.Expect(enterprise).To(gomega.ContainElement("enterprise"))
		})

		ginkgo.It("returns gated items intact for the filter to judge", func() {
			cfg := UserNavigation(TierEnterprise, "member", true)

			var enterprise *NavItem
			for i := range cfg.Items {
				if cfg.Items[i].ID == "enterprise" {
					enterprise = &cfg.Items[i]
				}
			}
			gomega.Expect(enterprise).NotTo(gomega.BeNil())

			var apiKeys *NavItem
			for i := range enterprise.Children {
				if enterprise.Children[i].ID == "api-keys" {
					apiKeys = &enterprise.Children[i]
				}
			}
			gomega.Expect(apiKeys).NotTo(gomega.BeNil())
			gomega.Expect(apiKeys.RequiresRole).To(gomega.Equal([]string{"owner", "admin"}))
		})

		ginkgo.It("always appends the settings section last", func() {
			for _, tier := range []Tier{"", TierStarter, TierEnterprise} {
				cfg := UserNavigation(tier, "member", true)
				ids := itemIDs(cfg.Items)

				gomega.Expect(ids[len(ids)-1]).To(gomega.Equal("settings"))
			}
		})
	})

	ginkgo.Describe("SuperAdminNavigation", func() {
		ginkgo.It("returns the fixed console tree with no gates", func() {
			cfg := SuperAdminNavigation()

			gomega.Expect(itemIDs(cfg.Items)).To(gomega.Equal([]string{"dashboard", "admin", "monitoring", "settings"}))

			var walk func(items []NavItem)
			walk = func(items []NavItem) {
				for _, item := range items {
					gomega.Expect(item.RequiresPermission).To(gomega.BeEmpty())
					gomega.Expect(item.RequiresRole).To(gomega.BeEmpty())
					gomega.Expect(item.RequiresSubscription).To(gomega.BeEmpty())
					walk(item.Children)
				}
			}
			walk(cfg.Items)
		})
	})

	ginkgo.Describe("Build", func() {
		ginkgo.It("routes super admins to the console tree regardless of other arguments", func() {
			cfg := Build(true, "", "", false)

			gomega.Expect(itemIDs(cfg.Items)).To(gomega.ContainElement("admin"))
		})

		ginkgo.It("routes regular members to the user tree", func() {
			cfg := Build(false, TierStarter, "member", true)

			gomega.Expect(itemIDs(cfg.Items)).NotTo(gomega.ContainElement("admin"))
		})
	})
})
