package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/harmony/internal/model"
)

// Context describes the student a piece of content is generated for.
type Context struct {
	// Extra carries domain hints such as a budget summary or stress factors.
	Extra       map[string]string
	Degree      string
	Major       string
	YearOfStudy string
	College     string
}

// ContextFromProfile builds a Context from a student profile.
func ContextFromProfile(p model.Profile) Context {
	return Context{
		Degree:      p.Degree,
		Major:       p.Major,
		YearOfStudy: p.YearOfStudy,
		College:     p.CollegeName,
	}
}

func (c Context) describe() string {
	var b strings.Builder
	degree := c.Degree
	if degree == "" {
		degree = "undergraduate"
	}
	fmt.Fprintf(&b, "%s students", degree)
	if c.Major != "" {
		fmt.Fprintf(&b, " majoring in %s", c.Major)
	}
	if c.YearOfStudy != "" {
		fmt.Fprintf(&b, " in their %s", c.YearOfStudy)
	}
	b.WriteString(" in India")

	if len(c.Extra) > 0 {
		keys := make([]string, 0, len(c.Extra))
		for k := range c.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(". Student context:")
		for _, k := range keys {
			fmt.Fprintf(&b, " %s: %s;", k, c.Extra[k])
		}
	}
	return b.String()
}

// kindSpec describes what to ask for and how to validate the answer.
type kindSpec struct {
	system string
	ask    string
	fields []string
	count  int
}

var generalSpecs = map[model.ContentKind]kindSpec{
	model.KindAcademicTrends: {
		system: "You're an educational advisor for Indian students.",
		ask:    "latest academic trends and study techniques",
		fields: []string{"trend", "description", "benefit"},
		count:  3,
	},
	model.KindFinancialTips: {
		system: "You're a personal finance advisor for Indian college students.",
		ask:    "practical money management tips",
		fields: []string{"tip", "description", "action_item"},
		count:  3,
	},
	model.KindWellnessTips: {
		system: "You're a student wellness counselor for Indian college students.",
		ask:    "evidence-based mental and physical wellness tips",
		fields: []string{"tip", "description", "benefit"},
		count:  3,
	},
	model.KindCareerInsights: {
		system: "You're a career counselor for Indian college students.",
		ask:    "current career and job market insights",
		fields: []string{"insight", "description", "action_item"},
		count:  3,
	},
}

var newsFields = []string{"title", "date", "source"}

// specFor returns the prompt settings for kind, including news kinds for any topic.
func specFor(kind model.ContentKind) (kindSpec, bool) {
	if spec, ok := generalSpecs[kind]; ok {
		return spec, true
	}
	topic, ok := kind.NewsTopic()
	if !ok {
		return kindSpec{}, false
	}
	return kindSpec{
		system: "You're a news curator for Indian college students.",
		ask:    fmt.Sprintf("recent news headlines about %s", topic),
		fields: newsFields,
		count:  3,
	}, true
}

// Fields returns the required item fields of kind.
func Fields(kind model.ContentKind) ([]string, bool) {
	spec, ok := specFor(kind)
	if !ok {
		return nil, false
	}
	return append([]string(nil), spec.fields...), true
}

// buildPrompt returns the system and user prompts for kind.
func buildPrompt(spec kindSpec, cctx Context, year int) (system, user string) {
	quoted := make([]string, len(spec.fields))
	for i, f := range spec.fields {
		quoted[i] = "'" + f + "'"
	}
	keys := strings.Join(quoted[:len(quoted)-1], ", ") + " and " + quoted[len(quoted)-1]

	user = fmt.Sprintf(
		"Provide %d %s for %s for %d. Format as a JSON list of dictionaries with keys %s. Respond with the JSON list only.",
		spec.count, spec.ask, cctx.describe(), year, keys,
	)
	return spec.system, user
}
