package tracker

import (
	"strings"

	"github.com/Veraticus/harmony/internal/model"
)

// Resource types used by the directory.
const (
	ResourceTypeCampus   = "campus"
	ResourceTypeExternal = "external"
)

func catalogResource(id, name, kind, category, website, description string) model.Resource {
	return model.Resource{
		Base:        model.Base{ID: id},
		Name:        name,
		Type:        kind,
		Category:    category,
		Website:     website,
		Description: description,
	}
}

var campusResources = func() []model.Resource {
	library := catalogResource("cr1", "University Library", ResourceTypeCampus, "academic",
		"library.college.edu", "Access to books, journals, and online databases")
	library.Location, library.Contact = "Central Campus", "library@college.edu"
	library.Hours = "Mon-Sat: 8:00 AM - 10:00 PM, Sun: 10:00 AM - 6:00 PM"

	lab := catalogResource("cr2", "Computer Lab", ResourceTypeCampus, "technology",
		"tech.college.edu/labs", "Computers with specialized software for academic use")
	lab.Location, lab.Contact = "Engineering Block", "complab@college.edu"
	lab.Hours = "Mon-Fri: 9:00 AM - 8:00 PM, Sat: 9:00 AM - 5:00 PM"

	careers := catalogResource("cr3", "Career Development Center", ResourceTypeCampus, "career",
		"careers.college.edu", "Resume review, interview preparation, and job postings")
	careers.Location, careers.Contact = "Administrative Block, 2nd Floor", "careers@college.edu"
	careers.Hours = "Mon-Fri: 10:00 AM - 5:00 PM"

	counseling := catalogResource("cr4", "Student Counseling Services", ResourceTypeCampus, "wellness",
		"health.college.edu/counseling", "Mental health support and counseling")
	counseling.Location, counseling.Contact = "Student Welfare Building", "counseling@college.edu"
	counseling.Hours = "Mon-Fri: 9:00 AM - 4:00 PM"

	aid := catalogResource("cr5", "Financial Aid Office", ResourceTypeCampus, "financial",
		"finaid.college.edu", "Scholarships, loans, and financial assistance")
	aid.Location, aid.Contact = "Administrative Block, 1st Floor", "finaid@college.edu"
	aid.Hours = "Mon-Fri: 10:00 AM - 4:00 PM"

	return []model.Resource{library, lab, careers, counseling, aid}
}()

var externalResources = func() []model.Resource {
	withCost := func(r model.Resource, cost string) model.Resource {
		r.Cost = cost
		return r
	}
	return []model.Resource{
		withCost(catalogResource("er1", "Swayam", ResourceTypeExternal, "academic",
			"https://swayam.gov.in/", "Free online courses from MHRD, Government of India"), "Free"),
		withCost(catalogResource("er2", "National Digital Library of India", ResourceTypeExternal, "academic",
			"https://ndl.iitkgp.ac.in/", "Virtual repository of learning resources"), "Free"),
		withCost(catalogResource("er3", "Internshala", ResourceTypeExternal, "career",
			"https://internshala.com/", "Internship and training platform for students"), "Free / Paid Training"),
		withCost(catalogResource("er4", "National Scholarship Portal", ResourceTypeExternal, "financial",
			"https://scholarships.gov.in/", "Single portal for all government scholarships"), "Free"),
		withCost(catalogResource("er5", "YourDost", ResourceTypeExternal, "wellness",
			"https://yourdost.com/", "Online counseling and emotional support"), "Free / Paid"),
	}
}()

var scholarships = []model.Scholarship{
	{
		Name:        "Central Sector Scheme of Scholarships",
		Provider:    "Ministry of Education",
		Eligibility: "Top 20 percentile in Class 12 board exams",
		Amount:      "₹10,000 per annum",
		Deadline:    "October 31, 2025",
		Website:     "https://scholarships.gov.in/",
	},
	{
		Name:        "Post-Matric Scholarship for SC Students",
		Provider:    "Ministry of Social Justice and Empowerment",
		Eligibility: "SC students with family income below ₹2.5 lakhs per annum",
		Amount:      "Course fees and maintenance allowance",
		Deadline:    "Varies by state",
		Website:     "https://scholarships.gov.in/",
	},
	{
		Name:        "Prime Minister's Scholarship Scheme",
		Provider:    "Ministry of Defence",
		Eligibility: "Dependent wards of ex/serving Armed Forces personnel",
		Amount:      "₹2,500 per month for boys, ₹3,000 per month for girls",
		Deadline:    "September 30, 2025",
		Website:     "https://ksb.gov.in/pm-scholarship.htm",
	},
	{
		Name:        "INSPIRE Scholarship",
		Provider:    "Department of Science & Technology",
		Eligibility: "Top 1% in Class 12 pursuing science degrees",
		Amount:      "₹80,000 per annum",
		Deadline:    "December 31, 2025",
		Website:     "https://online-inspire.gov.in/",
	},
	{
		Name:        "AICTE Pragati Scholarship for Girls",
		Provider:    "AICTE",
		Eligibility: "Girl students in AICTE approved technical institutions",
		Amount:      "₹50,000 per annum",
		Deadline:    "November 30, 2025",
		Website:     "https://www.aicte-india.org/schemes/students-development-schemes",
	},
}

var factorStrategies = []struct {
	factor     string
	strategies []string
}{
	{"Academic pressure", []string{
		"Break large tasks into smaller, manageable steps",
		"Use the Pomodoro technique (25 min work, 5 min break)",
		"Form or join a study group for difficult subjects",
		"Talk to your professors during office hours",
	}},
	{"Exam stress", []string{
		"Create a realistic study schedule",
		"Practice with past papers or sample questions",
		"Use memory techniques like spaced repetition",
		"Get enough sleep the night before exams",
	}},
	{"Assignment deadlines", []string{
		"Start assignments early, even with a small step",
		"Create a timeline with milestones for larger projects",
		"Use calendar reminders for upcoming deadlines",
		"Reach out to teaching assistants for clarification",
	}},
	{"Financial concerns", []string{
		"Create a detailed monthly budget",
		"Look into scholarship or grant opportunities",
		"Consider part-time work that fits your schedule",
		"Speak with your university financial aid office",
	}},
	{"Family expectations", []string{
		"Have an honest conversation about realistic goals",
		"Set boundaries while respecting family values",
		"Seek support from university counseling services",
		"Connect with others facing similar pressures",
	}},
	{"Relationship issues", []string{
		"Practice active listening and open communication",
		"Take time for self-reflection on your needs and feelings",
		"Maintain other supportive friendships",
		"Consider speaking with a counselor for guidance",
	}},
	{"Health problems", []string{
		"Don't skip medical appointments",
		"Inform professors if health is affecting academics",
		"Explore campus health resources",
		"Prioritize sleep, nutrition, and movement",
	}},
	{"Homesickness", []string{
		"Create a space with familiar items from home",
		"Schedule regular calls with family and friends",
		"Join campus groups to build a new community",
		"Explore your new surroundings with others",
	}},
	{"Career uncertainty", []string{
		"Visit your campus career center",
		"Arrange informational interviews in fields of interest",
		"Join clubs related to potential career paths",
		"Remember that many successful people changed paths",
	}},
}

var defaultStrategies = []string{
	"Practice deep breathing for immediate stress relief",
	"Physical activity helps reduce stress hormones",
	"Maintain social connections for support",
	"Ensure you're getting adequate sleep",
}

// StrategiesFor suggests coping strategies for a stress factor. A factor
// matches a catalog entry when either name contains the other, ignoring case.
func StrategiesFor(factor string) []string {
	f := strings.ToLower(strings.TrimSpace(factor))
	if f != "" {
		for _, entry := range factorStrategies {
			key := strings.ToLower(entry.factor)
			if strings.Contains(key, f) || strings.Contains(f, key) {
				return append([]string(nil), entry.strategies...)
			}
		}
	}
	return append([]string(nil), defaultStrategies...)
}
