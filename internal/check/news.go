package check

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/veridict/veridict/internal/model"
)

const newsAPIEndpoint = "https://newsapi.org/v2/everything"

// NewsChecker corroborates a claim against recent news coverage. It
// requires at least two matching articles before producing an opinion, and
// the opinion is needs_context-leaning: coverage is corroboration, not a
// verdict.
//
// With an API key it queries a news search provider; without one it falls
// back to configured RSS feeds.
type NewsChecker struct {
	apiKey     string
	endpoint   string
	feeds      []string
	httpClient *http.Client
	parser     *gofeed.Parser
}

// NewNewsChecker creates the checker. Returns nil when neither an API key
// nor RSS feeds are configured.
func NewNewsChecker(apiKey string, feeds []string, timeout time.Duration) *NewsChecker {
	if apiKey == "" && len(feeds) == 0 {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &http.Client{Timeout: timeout}
	parser := gofeed.NewParser()
	parser.Client = client
	return &NewsChecker{
		apiKey:     apiKey,
		endpoint:   newsAPIEndpoint,
		feeds:      feeds,
		httpClient: client,
		parser:     parser,
	}
}

// Name returns the checker name
func (c *NewsChecker) Name() string {
	return "news_corroboration"
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// article is the normalized shape both news paths reduce to. Provider
// field names never leak past this boundary.
type article struct {
	title       string
	description string
	source      string
}

const minMatchingArticles = 2

// Check extracts key terms from the claim and looks for corroborating
// coverage. Fewer than two matching articles is not-found.
func (c *NewsChecker) Check(ctx context.Context, claim string) (model.SourceCheckResult, error) {
	terms := KeyTerms(claim, 5)
	if len(terms) == 0 {
		return model.NotFound(c.Name()), nil
	}

	var articles []article
	var err error
	if c.apiKey != "" {
		articles, err = c.searchAPI(ctx, terms)
	} else {
		articles, err = c.searchFeeds(ctx)
	}
	if err != nil {
		return model.NotFound(c.Name()), err
	}

	matched := matchArticles(articles, terms)
	if len(matched) < minMatchingArticles {
		return model.NotFound(c.Name()), nil
	}

	var names []string
	for i, a := range matched {
		if i >= 3 {
			break
		}
		names = append(names, fmt.Sprintf("%q (%s)", a.title, a.source))
	}

	return model.SourceCheckResult{
		Found:   true,
		Verdict: model.VerdictNeedsContext,
		Explanation: fmt.Sprintf("%d recent articles cover this topic, including %s. Coverage corroborates the subject but does not settle the specific figure.",
			len(matched), strings.Join(names, ", ")),
		Confidence: 55,
		SourceName: c.Name(),
		Weight:     WeightNews,
	}, nil
}

func (c *NewsChecker) searchAPI(ctx context.Context, terms []string) ([]article, error) {
	query := url.Values{}
	query.Set("q", strings.Join(terms, " "))
	query.Set("apiKey", c.apiKey)
	query.Set("language", "en")
	query.Set("pageSize", "20")
	query.Set("sortBy", "relevancy")

	var resp newsAPIResponse
	if err := getJSON(ctx, c.httpClient, c.endpoint+"?"+query.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("news search: %w", err)
	}

	articles := make([]article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		articles = append(articles, article{
			title:       a.Title,
			description: a.Description,
			source:      a.Source.Name,
		})
	}
	return articles, nil
}

// searchFeeds pulls every configured RSS feed. A failing feed is skipped;
// the rest still contribute.
func (c *NewsChecker) searchFeeds(ctx context.Context) ([]article, error) {
	var articles []article
	for _, feedURL := range c.feeds {
		feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			continue
		}
		for _, item := range feed.Items {
			articles = append(articles, article{
				title:       item.Title,
				description: item.Description,
				source:      feed.Title,
			})
		}
	}
	return articles, nil
}

// matchArticles keeps articles whose title+description overlap the claim's
// key terms in at least two places.
func matchArticles(articles []article, terms []string) []article {
	var matched []article
	for _, a := range articles {
		haystack := strings.ToLower(a.title + " " + a.description)
		overlap := 0
		for _, term := range terms {
			if strings.Contains(haystack, strings.ToLower(term)) {
				overlap++
			}
		}
		if overlap >= 2 {
			matched = append(matched, a)
		}
	}
	return matched
}

var (
	properNounTermRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	numberTermRe     = regexp.MustCompile(`\d+(?:[.,]\d+)*%?`)
	wordRe           = regexp.MustCompile(`[a-zA-Z]{4,}`)
)

var stopwords = map[string]bool{
	"that": true, "this": true, "with": true, "from": true, "have": true,
	"will": true, "they": true, "been": true, "were": true, "their": true,
	"there": true, "about": true, "would": true, "could": true, "should": true,
	"than": true, "them": true, "then": true, "when": true, "what": true,
	"which": true, "because": true, "going": true, "every": true, "never": true,
	"always": true, "people": true, "thing": true, "things": true, "said": true,
}

// KeyTerms extracts up to max search terms from a claim: proper nouns
// first, then numbers, then the remaining longest non-stopword tokens.
func KeyTerms(claim string, max int) []string {
	seen := make(map[string]bool)
	var terms []string

	add := func(t string) {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] || len(terms) >= max {
			return
		}
		seen[key] = true
		terms = append(terms, t)
	}

	// Skip the sentence-initial capital unless it is a multi-word name
	for i, noun := range properNounTermRe.FindAllString(claim, -1) {
		if i == 0 && !strings.Contains(noun, " ") && strings.HasPrefix(claim, noun) {
			continue
		}
		add(noun)
	}
	for _, num := range numberTermRe.FindAllString(claim, -1) {
		add(num)
	}
	for _, word := range wordRe.FindAllString(claim, -1) {
		if !stopwords[strings.ToLower(word)] {
			add(word)
		}
	}

	return terms
}
