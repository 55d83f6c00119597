package dto

import "strings"

// DemoAboutBio paragraphs of the demo "about" section.
var DemoAboutBio = []string{
	"I'm a full-stack developer with several years of experience building web services and the interfaces on top of them. I like small, well-tested systems that are easy to operate.",
	"My work combines backend development with frontend craft: APIs, databases and the dashboards people actually use every day.",
	"Outside of client work I contribute to open source, write about what I learn and mentor junior developers.",
}

func intPtr(v int) *int { return &v }

// DemoPortfolio returns the demo content used by the seed command and as client-side defaults.
// Every call returns fresh slices, callers may mutate the result.
func DemoPortfolio() SavePortfolioRequest {
	return SavePortfolioRequest{
		PersonalInfo: &PersonalInfoRequest{
			Name:               "Alex Morgan",
			Title:              "Full-Stack Developer",
			Description:        "I build reliable web services and clean, fast interfaces for them.",
			Email:              "alex.morgan@example.com",
			Location:           "Remote",
			Phone:              "",
			Bio:                JoinBio(DemoAboutBio),
			Avatar:             "/profile-image.jpg",
			Availability:       "Available for opportunities",
			AvailabilityStatus: "available",
		},
		Skills: []SkillRequest{
			{Name: "Go", Level: intPtr(90), Category: "Backend"},
			{Name: "PostgreSQL", Level: intPtr(85), Category: "Backend"},
			{Name: "REST API Design", Level: intPtr(88), Category: "Backend"},
			{Name: "Docker", Level: intPtr(80), Category: "DevOps"},
			{Name: "HTML/CSS", Level: intPtr(85), Category: "Frontend"},
			{Name: "TypeScript", Level: intPtr(80), Category: "Frontend"},
			{Name: "React", Level: intPtr(78), Category: "Frontend"},
			{Name: "Technical Writing", Level: intPtr(75), Category: "Other"},
		},
		Projects: []ProjectRequest{
			{
				Title:       "Learning Platform",
				Description: "Redesigned the course catalogue and lesson player of an online learning platform. Responsive layouts and accessible components.",
				Image:       "/placeholder.svg?height=400&width=600",
				DemoURL:     "https://example.com/learning",
				Featured:    true,
				Tags:        []string{"HTML", "CSS", "TypeScript", "UI/UX", "Responsive Design"},
			},
			{
				Title:       "Content Generation Service",
				Description: "A service that drafts marketing copy from short briefs, with a review queue for editors.",
				Image:       "/placeholder.svg?height=400&width=600",
				DemoURL:     "https://example.com/copy",
				RepoURL:     "https://github.com/example/copy-service",
				Featured:    true,
				Tags:        []string{"Go", "PostgreSQL", "React", "REST API"},
			},
			{
				Title:       "Support Ticket Dashboard",
				Description: "Internal dashboard for tracking support tickets, user accounts and service health.",
				Image:       "/placeholder.svg?height=400&width=600",
				Featured:    true,
				Tags:        []string{"Dashboard", "Go", "WebSocket", "Analytics"},
			},
			{
				Title:       "Inventory Sync",
				Description: "Nightly synchronisation of warehouse stock between an ERP system and an online shop.",
				Image:       "/placeholder.svg?height=400&width=600",
				Featured:    false,
				Tags:        []string{"ERP", "Integration", "Go"},
			},
		},
		Experience: []ExperienceRequest{
			{
				Company:      "Northwind Studio",
				Position:     "Full-Stack Developer",
				Duration:     "2023 - Present",
				Description:  "Building customer-facing web applications and the Go services behind them. Owning deployment and monitoring.",
				Technologies: []string{"Go", "PostgreSQL", "React", "Docker"},
			},
			{
				Company:      "Contoso Systems",
				Position:     "Backend Developer",
				Duration:     "2021 - 2023",
				Description:  "Developed integration services between accounting software and client systems. Reduced manual data entry for support staff.",
				Technologies: []string{"Go", "REST API", "MySQL", "Linux"},
			},
			{
				Company:      "Fabrikam Support",
				Position:     "Technical Support Engineer",
				Duration:     "2019 - 2021",
				Description:  "Set up networks and workstations for small business clients and resolved day-to-day technical issues.",
				Technologies: []string{"Networking", "Ticketing Systems", "Remote Support"},
			},
		},
		SocialLinks: []SocialLinkRequest{
			{Platform: "GitHub", URL: "https://github.com/example", Icon: "Github"},
			{Platform: "LinkedIn", URL: "https://linkedin.com/in/example", Icon: "Linkedin"},
			{Platform: "Email", URL: "mailto:alex.morgan@example.com", Icon: "Mail"},
		},
	}
}

// JoinBio склеивает абзацы в поле bio через пустую строку.
func JoinBio(paragraphs []string) string {
	return strings.Join(paragraphs, "\n\n")
}

// SplitBio разбивает bio обратно на непустые абзацы.
func SplitBio(bio string) []string {
	var out []string
	for _, p := range strings.Split(bio, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
