package plan

// DefaultCatalog returns the reference 90-day plan: 18 items, 6 per phase.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultItems)
	if err != nil {
		panic("plan: default catalog: " + err.Error())
	}
	return c
}

var defaultItems = []ActionItem{
	// Phase 1: days 1-30
	{ID: "p1_1", Phase: 1, Priority: PriorityCritical, Emoji: "🔗",
		Title:       "Swap in affiliate links",
		Description: "Replace the Hostinger, NordVPN and Notion referral links with your own affiliate links. Zero cost, immediate revenue potential."},
	{ID: "p1_2", Phase: 1, Priority: PriorityCritical, Emoji: "⭐",
		Title:       "X Premium + monetization application",
		Description: "Buy X Premium and apply to the monetization program. Required for the ad revenue share.",
		PreCompleted: true, PreCompletedDate: MustParseDate("2026-02-20")},
	{ID: "p1_3", Phase: 1, Priority: PriorityImportant, Emoji: "📧",
		Title:       "Add an email opt-in to the landing page",
		Description: "Add an email capture form. The first 1K emails are a valuable asset."},
	{ID: "p1_4", Phase: 1, Priority: PriorityImportant, Emoji: "🧵",
		Title:       "Publish a launch thread",
		Description: "Post a thread introducing the tool: screenshots, features and a link."},
	{ID: "p1_5", Phase: 1, Priority: PriorityNormal, Emoji: "📝",
		Title:       "SEO: blog section + first 3 posts",
		Description: "Open a blog targeting monetization keywords and write the first three posts."},
	{ID: "p1_6", Phase: 1, Priority: PriorityNormal, Emoji: "💬",
		Title:       "Start a reply-first routine",
		Description: "Write 50+ quality replies a day. Spend 80% of your time replying to reach larger audiences."},

	// Phase 2: days 31-60
	{ID: "p2_1", Phase: 2, Priority: PriorityCritical, Emoji: "🔗",
		Title:       "Integrate a URL shortener",
		Description: "Track clicks and conversions through a shortener and decide from real data."},
	{ID: "p2_2", Phase: 2, Priority: PriorityCritical, Emoji: "🚀",
		Title:       "Product Hunt launch",
		Description: "Prepare the listing, visuals and community support for launch day."},
	{ID: "p2_3", Phase: 2, Priority: PriorityImportant, Emoji: "🤖",
		Title:       "Content suggestion API integration",
		Description: "Connect an LLM API and build a basic post suggestion engine."},
	{ID: "p2_4", Phase: 2, Priority: PriorityImportant, Emoji: "🤝",
		Title:       "Partner with 3 creators",
		Description: "Agree on cross-promotion with three creators for mutual growth and trust."},
	{ID: "p2_5", Phase: 2, Priority: PriorityNormal, Emoji: "📚",
		Title:       "Draft an e-book",
		Description: "Write a 5,000 word first draft and plan its sales page."},
	{ID: "p2_6", Phase: 2, Priority: PriorityNormal, Emoji: "📊",
		Title:       "Analytics pattern review",
		Description: "Log analytics regularly and look for the best hours, days and content types."},

	// Phase 3: days 61-90
	{ID: "p3_1", Phase: 3, Priority: PriorityCritical, Emoji: "💳",
		Title:       "Payments + premium plan",
		Description: "Integrate payments for a premium plan, open a beta list and land the first subscriber."},
	{ID: "p3_2", Phase: 3, Priority: PriorityCritical, Emoji: "⚙️",
		Title:       "Official API application",
		Description: "Apply for the basic API plan, work out the ROI and plan automatic revenue import."},
	{ID: "p3_3", Phase: 3, Priority: PriorityImportant, Emoji: "💼",
		Title:       "Start sponsorship outreach",
		Description: "Send sponsorship proposals to three SaaS brands."},
	{ID: "p3_4", Phase: 3, Priority: PriorityImportant, Emoji: "📖",
		Title:       "Put the e-book on sale",
		Description: "Publish the e-book and promote it on social media."},
	{ID: "p3_5", Phase: 3, Priority: PriorityNormal, Emoji: "📈",
		Title:       "Start MRR tracking",
		Description: "Track monthly recurring revenue and add MRR metrics to the dashboard."},
	{ID: "p3_6", Phase: 3, Priority: PriorityNormal, Emoji: "🎯",
		Title:       "Day 90 review + next quarter plan",
		Description: "Review what worked and what did not, then write the next quarter's plan."},
}
