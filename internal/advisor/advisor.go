package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
)

var (
	// ErrEmptyQuery is returned for a blank question.
	ErrEmptyQuery = errors.New("question is empty")
	// ErrUnknownDomain is returned for a domain name outside Domains.
	ErrUnknownDomain = errors.New("unknown advice domain")
)

const (
	adviceTemperature = 0.7
	adviceMaxTokens   = 1024
)

// Advice is the answer to one question.
type Advice struct {
	Domain Domain `json:"domain"`
	Text   string `json:"advice"`
	// Fallback is set when Text is static guidance rather than a live answer.
	Fallback bool `json:"fallback"`
}

// Advisor answers questions through a completion service.
type Advisor struct {
	completer service.CompletionService
	logger    *slog.Logger
}

// New creates an advisor. A nil completer always answers with static
// guidance.
func New(completer service.CompletionService, logger *slog.Logger) *Advisor {
	if logger == nil {
		logger = common.DiscardLogger()
	}
	return &Advisor{completer: completer, logger: logger}
}

// Advise answers query in domain. An empty domain is classified from the
// query. student adds optional context to the prompt. Completion failures
// never surface: the static guidance for the domain is returned instead.
func (a *Advisor) Advise(ctx context.Context, query string, domain Domain, student map[string]string) (Advice, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Advice{}, common.NewUserError("Please enter a question.", ErrEmptyQuery)
	}
	if domain == "" {
		domain = ClassifyDomain(query)
	}
	prompt, ok := systemPrompts[domain]
	if !ok {
		return Advice{}, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}

	if a.completer == nil {
		return Advice{Domain: domain, Text: fallbackGuidance[domain], Fallback: true}, nil
	}

	text, err := a.completer.Complete(ctx, service.CompletionRequest{
		SystemPrompt: prompt + contextSuffix(student),
		UserPrompt:   query,
		Temperature:  service.Temperature(adviceTemperature),
		MaxTokens:    adviceMaxTokens,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		a.logger.Warn("advice unavailable, using static guidance", "domain", domain, "error", err)
		return Advice{Domain: domain, Text: fallbackGuidance[domain], Fallback: true}, nil
	}
	return Advice{Domain: domain, Text: strings.TrimSpace(text)}, nil
}

func contextSuffix(student map[string]string) string {
	keys := make([]string, 0, len(student))
	for k, v := range student {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("\n\nStudent context: ")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s. ", k, student[k])
	}
	return strings.TrimRight(b.String(), " ")
}

// StudentContext describes a student for the advice prompt.
func StudentContext(p model.Profile) map[string]string {
	return map[string]string{
		"degree":        p.Degree,
		"major":         p.Major,
		"year_of_study": p.YearOfStudy,
		"college":       p.CollegeName,
	}
}
