package domain

// QuizQuestion is one question of the legal health check. Scores is parallel to Options.
type QuizQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Scores   []int    `json:"scores"`
}

// QuizResult is produced once per completed quiz run.
type QuizResult struct {
	Score   int       `json:"score"`
	Risk    RiskLevel `json:"risk"`
	Message string    `json:"message"`
}

var quizQuestions = []QuizQuestion{
	{
		ID:       1,
		Question: "How do you engage people to perform work for your business?",
		Options: []string{
			"Only permanent employees on payroll",
			"A mix of employees and independent contractors",
			"Mainly independent contractors or freelancers",
			"I'm a sole trader working alone",
		},
		Scores: []int{5, 20, 30, 0},
	},
	{
		ID:       2,
		Question: "Do you have formal, written contracts for all your employees and contractors?",
		Options: []string{
			"Yes, everyone has a signed, up-to-date agreement",
			"Some people do, but not all",
			"Only for employees, not contractors",
			"No, we mainly use verbal agreements",
		},
		Scores: []int{0, 15, 20, 35},
	},
	{
		ID:       3,
		Question: "Does your website or app collect personal information from users (e.g., names, emails)?",
		Options: []string{
			"Yes, and we have a Privacy Policy that explains how we use it",
			"Yes, but we don't have a formal Privacy Policy",
			"No, we don't collect any user data",
			"I'm not sure what information we collect",
		},
		Scores: []int{0, 30, 0, 25},
	},
	{
		ID:       4,
		Question: "How do you handle client work or service provisions?",
		Options: []string{
			"We use a detailed Client Service Agreement for every project",
			"We send a quote or proposal that outlines the basics",
			"We usually just agree on the scope and price over email",
			"We rely on verbal agreements and trust",
		},
		Scores: []int{0, 15, 25, 30},
	},
}

// QuizQuestions returns the health check questions in order.
func QuizQuestions() []QuizQuestion {
	out := make([]QuizQuestion, len(quizQuestions))
	copy(out, quizQuestions)
	return out
}

var quizMessages = map[RiskLevel]string{
	RiskLevelCritical: "Urgent action required! Your business has significant legal vulnerabilities " +
		"that could lead to severe penalties.",
	RiskLevelHigh: "High risk detected. You have several key legal gaps that should be addressed as soon as possible.",
	RiskLevelMedium: "There are some areas for improvement. Proactively strengthening your legal documents " +
		"now can save you headaches later.",
	RiskLevelLow: "You're in great shape! Your foundational legal protections seem to be in a good place.",
}

// QuizMessage returns the message bound to a classification.
func QuizMessage(level RiskLevel) string {
	return quizMessages[level]
}
