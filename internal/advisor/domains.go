package advisor

import (
	"fmt"
	"strings"
)

// Domain is an advice area.
type Domain string

// Advice domains.
const (
	DomainMentalHealth Domain = "mental_health"
	DomainAcademic     Domain = "academic"
	DomainCareer       Domain = "career"
	DomainFinancial    Domain = "financial"
)

// Domains lists every domain in classification order.
var Domains = []Domain{DomainMentalHealth, DomainAcademic, DomainCareer, DomainFinancial}

// ParseDomain accepts a domain name, also allowing "mental-health" and
// "wellness" for DomainMentalHealth.
func ParseDomain(s string) (Domain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mental_health", "mental-health", "mental", "wellness":
		return DomainMentalHealth, nil
	case "academic", "academics":
		return DomainAcademic, nil
	case "career":
		return DomainCareer, nil
	case "financial", "finance":
		return DomainFinancial, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
}

var keywords = map[Domain][]string{
	DomainMentalHealth: {
		"stress", "anxiety", "depression", "mental health", "feeling", "overwhelmed",
		"sleep", "lonely", "sad", "tired", "exhausted", "pressure", "bullying",
	},
	DomainAcademic: {
		"study", "exam", "grade", "class", "course", "assignment", "professor",
		"lecture", "gpa", "cgpa", "attendance", "project", "learning", "semester",
	},
	DomainCareer: {
		"job", "intern", "resume", "interview", "skill", "placement", "company",
		"industry", "salary", "profession", "career", "opportunity",
	},
	DomainFinancial: {
		"money", "loan", "scholarship", "fee", "stipend", "budget", "expense",
		"cost", "payment", "financial", "fund", "saving", "bank", "rupee", "rs",
	},
}

// ClassifyDomain picks the domain whose keywords occur most often in query.
// Keywords match as substrings of the lower-cased query. Ties go to the
// earlier domain in Domains; a query with no keyword is academic.
func ClassifyDomain(query string) Domain {
	q := strings.ToLower(query)
	best, bestCount := DomainAcademic, 0
	for _, d := range Domains {
		count := 0
		for _, kw := range keywords[d] {
			if strings.Contains(q, kw) {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = d, count
		}
	}
	return best
}

var systemPrompts = map[Domain]string{
	DomainMentalHealth: "You are a supportive mental wellness advisor for Indian college students. " +
		"Provide empathetic, practical advice for managing stress, anxiety, and maintaining well-being " +
		"in a high-pressure academic environment. Focus on realistic strategies considering the Indian context. " +
		"Never provide medical diagnoses or replace professional help. " +
		"Always encourage seeking professional support for serious concerns.",
	DomainAcademic: "You are an academic success advisor for Indian college students. " +
		"Provide practical study strategies, time management techniques, and academic resources relevant " +
		"to the Indian education system. Consider the competitive nature of Indian academics and suggest " +
		"balanced approaches that promote learning while managing stress. " +
		"Tailor advice to different fields of study in the Indian context.",
	DomainCareer: "You are a career development advisor for Indian college students. " +
		"Provide guidance on career planning, skill development, and job preparation specifically for the " +
		"Indian job market. Include advice on internships, campus placements, competitive exams, and " +
		"industry-specific opportunities in India. " +
		"Address common challenges faced by fresh graduates in India's job market.",
	DomainFinancial: "You are a financial wellness advisor for Indian college students. " +
		"Provide practical financial advice on managing educational expenses, scholarships, educational loans, " +
		"and basic budgeting for students in India. Include information about government schemes, bank loans, " +
		"and financial support systems available specifically for Indian students. " +
		"Focus on realistic financial strategies for students.",
}

var fallbackGuidance = map[Domain]string{
	DomainMentalHealth: "Advice is unavailable right now, but a few things help most students under pressure:\n" +
		"- Keep a regular sleep schedule of 7-9 hours, especially around exams.\n" +
		"- Take short breaks every hour of study and get some daylight or a walk.\n" +
		"- Talk to a friend, family member or your college counselling cell.\n" +
		"If you are in distress, call the Tele-MANAS helpline at 14416 or KIRAN at 1800-599-0019.",
	DomainAcademic: "Advice is unavailable right now. Some reliable study habits:\n" +
		"- Plan the week around deadlines and break large tasks into daily steps.\n" +
		"- Use active recall and past papers instead of rereading notes.\n" +
		"- Ask professors or seniors early when a topic is unclear.\n" +
		"NPTEL and Swayam offer free courses that follow most Indian university syllabi.",
	DomainCareer: "Advice is unavailable right now. To keep your career plans moving:\n" +
		"- Keep a one-page resume updated with projects, internships and skills.\n" +
		"- Visit your placement cell and check Internshala or LinkedIn for openings.\n" +
		"- Practise aptitude and interview questions a few times a week.\n" +
		"Small projects and certifications count when you have no work experience yet.",
	DomainFinancial: "Advice is unavailable right now. A few basics that help every student:\n" +
		"- Track every expense for a month and set a budget for each category.\n" +
		"- Check the National Scholarship Portal and your state portal for schemes you qualify for.\n" +
		"- Compare education loans under the Vidya Lakshmi portal before borrowing.\n" +
		"Set aside a small emergency fund, even a few hundred rupees a month.",
}
