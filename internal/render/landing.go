package render

import "strings"

var features = []Row{
	{"chat", "AI financial advisor, in student or professional mode"},
	{"budget", "Analyze spending with the 50/30/20 rule"},
	{"savings", "Project progress toward a savings goal"},
	{"invest", "Project portfolio growth with compound interest"},
	{"fraud", "Check suspicious messages for scams"},
}

// Landing renders the view shown in place of the conversation when nobody is
// signed in.
func Landing() string {
	lines := []string{
		Title("Personal Finance, Reinvented"),
		"Meet your AI-powered money coach.",
		"",
	}
	for _, f := range features {
		lines = append(lines, "  "+valueStyle.Render(f.Label)+"  "+labelStyle.Render(f.Value))
	}
	lines = append(lines, "", Hint("Sign in to start chatting: fincoach signin --email you@example.com"))
	return strings.Join(lines, "\n")
}
