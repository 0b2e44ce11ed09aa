package progress

// Stage is a labeled segment of the progress range shown as the current activity.
type Stage struct {
	Label string
	Icon  string
}

// DefaultStages are the audit stages shown while a simulated audit runs.
var DefaultStages = []Stage{
	{Label: "Initializing AI models", Icon: "⚙"},
	{Label: "Scanning for vulnerabilities", Icon: "⛨"},
	{Label: "Analyzing gas optimization", Icon: "⚡"},
	{Label: "Verifying code intent", Icon: "◉"},
	{Label: "Generating report", Icon: "⛨"},
}

// StagesFromLabels builds stages from plain labels, borrowing icons from
// DefaultStages by position.
func StagesFromLabels(labels []string) []Stage {
	stages := make([]Stage, len(labels))
	for i, l := range labels {
		icon := "•"
		if i < len(DefaultStages) {
			icon = DefaultStages[i].Icon
		}
		stages[i] = Stage{Label: l, Icon: icon}
	}
	return stages
}

// StageIndex maps a percentage onto an ordered list of count stages.
// The result is floor(percent/100*count) clamped to [0, count-1], so 100%
// stays on the last stage.
func StageIndex(percent, count int) int {
	if count <= 0 || percent <= 0 {
		return 0
	}
	idx := percent * count / MaxPercent
	if idx >= count {
		return count - 1
	}
	return idx
}
