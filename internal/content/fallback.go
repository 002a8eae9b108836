package content

import (
	"strings"

	"github.com/Veraticus/harmony/internal/model"
)

// Field is a coarse field of study used to pick built-in content.
type Field string

// Fields of study.
const (
	FieldEngineering Field = "engineering"
	FieldBusiness    Field = "business"
	FieldGeneral     Field = "general"
)

var (
	engineeringMarkers = []string{"b.tech", "b.e.", "m.tech", "engineering"}
	businessMarkers    = []string{"bba", "b.com", "mba", "business", "commerce"}
)

// ClassifyField maps a degree (and optionally a major) to a field of study.
func ClassifyField(degree, major string) Field {
	text := strings.ToLower(degree + " " + major)
	for _, m := range engineeringMarkers {
		if strings.Contains(text, m) {
			return FieldEngineering
		}
	}
	for _, m := range businessMarkers {
		if strings.Contains(text, m) {
			return FieldBusiness
		}
	}
	return FieldGeneral
}

// unknownNews answers news topics with no built-in table.
var unknownNews = []model.Item{
	{"title": "Education updates available soon", "date": "April 2025", "source": "HARMONY-India"},
}

var fallbackNews = map[string][]model.Item{
	"education": {
		{"title": "NEP 2020: New Changes Coming for Engineering Programs", "date": "April 5, 2025", "source": "Education Times"},
		{"title": "Top 10 Universities in India Announce Special Scholarships", "date": "April 2, 2025", "source": "India Today"},
		{"title": "Digital Learning Platforms See 45% Growth in Indian Student Adoption", "date": "March 28, 2025", "source": "Tech Education"},
	},
	"finance": {
		{"title": "New Government Financial Aid Scheme for STEM Students Announced", "date": "April 6, 2025", "source": "Financial Express"},
		{"title": "Student Credit Card with Special Benefits Launched by SBI", "date": "April 1, 2025", "source": "Banking News"},
		{"title": "How to Apply for Education Loan: Updated Guidelines for 2025", "date": "March 25, 2025", "source": "Student Finance"},
	},
	"wellness": {
		{"title": "Study Shows Direct Link Between Sleep Quality and Exam Performance", "date": "April 4, 2025", "source": "Health Times"},
		{"title": "Campus Mental Health Programs See Positive Results", "date": "March 30, 2025", "source": "Wellness Today"},
		{"title": "Mindfulness Apps Specifically Designed for Student Stress Released", "date": "March 20, 2025", "source": "Digital Wellness"},
	},
	"career": {
		{"title": "Top In-Demand Skills for 2025 Graduates in India", "date": "April 7, 2025", "source": "Career Guide"},
		{"title": "Major Tech Companies Announce Increased Hiring for Indian Graduates", "date": "April 3, 2025", "source": "Tech Careers"},
		{"title": "Remote Work Opportunities for Students Rise by 60%", "date": "March 29, 2025", "source": "Future of Work"},
	},
	"resources": {
		{"title": "5 New Digital Libraries Offering Free Resources to Indian Students", "date": "April 6, 2025", "source": "Education Resources"},
		{"title": "NPTEL Launches 50 New Free Certification Courses", "date": "April 2, 2025", "source": "Online Learning"},
		{"title": "Government Launches National Digital Skills Portal for Students", "date": "March 28, 2025", "source": "Digital India"},
	},
}

var fallbackGeneral = map[model.ContentKind]map[Field][]model.Item{
	model.KindAcademicTrends: {
		FieldEngineering: {
			{"trend": "Project-Based Learning", "description": "Engineering programs are increasingly adopting project-based approaches that mirror industry practices", "benefit": "Develops practical skills and portfolio for job market"},
			{"trend": "AI & ML Integration", "description": "AI and machine learning concepts are being integrated across engineering disciplines", "benefit": "Prepares students for the most in-demand technical skills"},
			{"trend": "Micro-credentials", "description": "Short, specialized certifications that complement formal degrees", "benefit": "Allows students to demonstrate specific technical competencies to employers"},
		},
		FieldBusiness: {
			{"trend": "Data-Driven Decision Making", "description": "Business curricula now emphasize statistical analysis and data interpretation", "benefit": "Essential skill for modern business operations and strategy"},
			{"trend": "Entrepreneurship Focus", "description": "Programs emphasizing startup methodologies and business model innovation", "benefit": "Prepares students for both corporate and startup environments"},
			{"trend": "Sustainability Management", "description": "Business courses integrating environmental and social impact considerations", "benefit": "Alignment with emerging business priorities and regulations"},
		},
		FieldGeneral: {
			{"trend": "Interdisciplinary Learning", "description": "Programs that blend multiple fields of study for broader perspectives", "benefit": "Develops versatile thinking and adaptability"},
			{"trend": "Digital Literacy Enhancement", "description": "Focused training on digital tools relevant to all disciplines", "benefit": "Essential workplace skills regardless of field"},
			{"trend": "Active Learning Methods", "description": "Techniques that emphasize student participation over passive lectures", "benefit": "Improves retention and practical application of concepts"},
		},
	},
	model.KindFinancialTips: {
		FieldEngineering: {
			{"tip": "Budget for project costs", "description": "Lab components, software licences and hackathon travel add up over a semester", "action_item": "Set aside a fixed monthly amount for project expenses"},
			{"tip": "Use student software offers", "description": "Many IDEs, cloud credits and design tools are free with a college email", "action_item": "List paid tools you use and check for a student plan"},
			{"tip": "Track internship stipends", "description": "Stipends are irregular income and easy to spend without noticing", "action_item": "Move part of every stipend into savings the day it arrives"},
		},
		FieldBusiness: {
			{"tip": "Practice what you study", "description": "Running your own monthly budget is a working case study in cost control", "action_item": "Review last month's spending by category this week"},
			{"tip": "Start a small SIP", "description": "Systematic investment plans accept small monthly amounts and build the habit early", "action_item": "Compare two low-cost index funds and their minimum SIP"},
			{"tip": "Plan for placement season", "description": "Formal wear, travel and test fees cluster around recruitment", "action_item": "Estimate placement costs and save toward them monthly"},
		},
		FieldGeneral: {
			{"tip": "Follow the 50/30/20 rule", "description": "Split income into needs, wants and savings to keep spending balanced", "action_item": "Set category budgets that match the split"},
			{"tip": "Build an emergency fund", "description": "A small reserve prevents borrowing when unexpected costs appear", "action_item": "Save until you hold one month of essential expenses"},
			{"tip": "Check scholarship portals", "description": "Government and private scholarships open at different times of the year", "action_item": "Register on the National Scholarship Portal"},
		},
	},
	model.KindWellnessTips: {
		FieldEngineering: {
			{"tip": "Break up long coding sessions", "description": "Hours at a screen strain eyes, posture and focus", "benefit": "Short breaks every 50 minutes keep concentration steady"},
			{"tip": "Protect sleep before exams", "description": "All-night study sessions lower recall the next day", "benefit": "Seven to eight hours of sleep improves memory consolidation"},
			{"tip": "Study with peers", "description": "Group problem solving reduces isolation during heavy coursework", "benefit": "Shared effort lowers stress and surfaces gaps in understanding"},
		},
		FieldBusiness: {
			{"tip": "Schedule downtime", "description": "Case deadlines and presentations can crowd out rest", "benefit": "Planned breaks prevent burnout across the semester"},
			{"tip": "Move every day", "description": "A short walk or workout offsets long days of meetings and classes", "benefit": "Regular activity improves mood and energy"},
			{"tip": "Limit caffeine late in the day", "description": "Late coffee delays sleep even when you feel tired", "benefit": "Better sleep quality and steadier focus"},
		},
		FieldGeneral: {
			{"tip": "Keep a regular sleep schedule", "description": "Going to bed and waking at consistent times stabilises energy", "benefit": "Improves mood and concentration"},
			{"tip": "Practice mindful breathing", "description": "Five minutes of slow breathing calms the stress response", "benefit": "Reduces anxiety before exams and presentations"},
			{"tip": "Talk to someone", "description": "Campus counsellors and friends help put problems in perspective", "benefit": "Early support keeps small worries from growing"},
		},
	},
	model.KindCareerInsights: {
		FieldEngineering: {
			{"insight": "Portfolios beat grades alone", "description": "Recruiters increasingly review GitHub projects alongside CGPA", "action_item": "Publish one complete project with a clear README"},
			{"insight": "Cloud and data skills are in demand", "description": "Entry-level roles often ask for cloud basics and SQL", "action_item": "Finish one free cloud fundamentals course"},
			{"insight": "Internships convert to offers", "description": "Many pre-placement offers come from summer internships", "action_item": "Apply to at least five internships this month"},
		},
		FieldBusiness: {
			{"insight": "Analytics roles are growing", "description": "Business analyst positions expect spreadsheet and dashboard skills", "action_item": "Build a small dashboard from a public dataset"},
			{"insight": "Case competitions open doors", "description": "Winning or placing in case competitions gets noticed by recruiters", "action_item": "Register for one inter-college case competition"},
			{"insight": "Networking matters", "description": "Alumni referrals are a common route into consulting and finance", "action_item": "Reach out to two alumni working in your target role"},
		},
		FieldGeneral: {
			{"insight": "Communication skills stand out", "description": "Employers across sectors rank clear writing and speaking highly", "action_item": "Present your work to a group at least once this term"},
			{"insight": "Certifications add signal", "description": "Short certified courses show initiative beyond the syllabus", "action_item": "Complete one NPTEL or Swayam certification"},
			{"insight": "Start your resume early", "description": "A running resume makes it easy to apply when openings appear", "action_item": "Draft a one-page resume and update it every semester"},
		},
	},
}

// Fallback returns the built-in content for kind. The result is never empty.
func Fallback(kind model.ContentKind, cctx Context) []model.Item {
	if topic, ok := kind.NewsTopic(); ok {
		if items, ok := fallbackNews[topic]; ok {
			return copyItems(items)
		}
		return copyItems(unknownNews)
	}
	byField, ok := fallbackGeneral[kind]
	if !ok {
		return copyItems(unknownNews)
	}
	return copyItems(byField[ClassifyField(cctx.Degree, cctx.Major)])
}

var subjectCatalog = []struct {
	subject string
	items   []model.Item
}{
	{"mathematics", []model.Item{
		{"name": "NPTEL Mathematics Courses", "type": "Online Courses", "website": "https://nptel.ac.in/"},
		{"name": "Khan Academy Mathematics", "type": "Video Tutorials", "website": "https://www.khanacademy.org/math"},
	}},
	{"computer science", []model.Item{
		{"name": "GeeksforGeeks", "type": "Tutorial Website", "website": "https://www.geeksforgeeks.org/"},
		{"name": "CodeWithHarry", "type": "YouTube Channel", "website": "https://www.youtube.com/c/CodeWithHarry"},
	}},
	{"engineering", []model.Item{
		{"name": "NPTEL Engineering Courses", "type": "Online Courses", "website": "https://nptel.ac.in/"},
		{"name": "VirtualLabs", "type": "Virtual Laboratories", "website": "https://www.vlab.co.in/"},
	}},
	{"business", []model.Item{
		{"name": "IIM MOOC Courses", "type": "Online Courses", "website": "https://www.iimb.ac.in/eep/product/76/MOOC"},
		{"name": "InsideIIM", "type": "Business Education Portal", "website": "https://insideiim.com/"},
	}},
}

var generalResources = []model.Item{
	{"name": "Swayam Portal", "type": "Online Courses", "website": "https://swayam.gov.in/"},
	{"name": "National Digital Library", "type": "Digital Library", "website": "https://ndl.iitkgp.ac.in/"},
}

// SubjectResources returns built-in learning resources for a subject. A
// subject matches a catalog entry when either name contains the other.
func SubjectResources(subject string) []model.Item {
	s := strings.ToLower(strings.TrimSpace(subject))
	if s != "" {
		for _, entry := range subjectCatalog {
			if strings.Contains(entry.subject, s) || strings.Contains(s, entry.subject) {
				return copyItems(entry.items)
			}
		}
	}
	return copyItems(generalResources)
}
