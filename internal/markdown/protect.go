package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	tokenPrefix = "__PROTECTED_BLOCK_"
	tokenSuffix = "__"
)

// emphasisRunRe matches a strong or em run made only of token cores, which is
// how a GFM converter renders adjacent tokens.
var (
	emphasisRunRe = regexp.MustCompile(`<(strong|em)>((?:_*PROTECTED_BLOCK_\d+_*)+)</(?:strong|em)>`)
	tokenCoreRe   = regexp.MustCompile(`PROTECTED_BLOCK_(\d+)`)
)

// Rule is one protected pattern. Rules are applied in order, each to the
// output of the previous one.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

var (
	classBlockTags = []string{"div", "section", "figure", "aside", "table", "details", "iframe", "blockquote"}
	styleTags      = []string{"span", "p", "div", "img", "a", "font", "table", "section"}
	voidTags       = map[string]bool{"img": true}

	tweetRule = Rule{
		Name: "tweet",
		Pattern: regexp.MustCompile(`(?is)<blockquote\b[^>]*\bclass\s*=\s*["'][^"']*\btwitter-tweet\b[^"']*["'][^>]*>.*?</blockquote>` +
			`(?:\s*<script\b[^>]*platform\.twitter\.com/widgets\.js[^>]*>\s*</script>)?`),
	}
)

// attrRule matches tag elements carrying attr. RE2 has no backreferences, so
// every tag gets its own pattern. Same-tag nesting ends at the first closing
// tag.
func attrRule(tag, attr string) Rule {
	open := fmt.Sprintf(`<%s\b[^>]*\b%s\s*=\s*(?:"[^"]*"|'[^']*')[^>]*`, tag, attr)
	if voidTags[tag] {
		return Rule{Name: attr + ":" + tag, Pattern: regexp.MustCompile(`(?is)` + open + `>`)}
	}
	return Rule{
		Name:    attr + ":" + tag,
		Pattern: regexp.MustCompile(`(?is)` + open + `>.*?</` + tag + `\s*>`),
	}
}

// DefaultRules returns the protected patterns in priority order: tweet
// embeds, class-carrying block elements, then style-carrying elements.
func DefaultRules() []Rule {
	rules := []Rule{tweetRule}
	for _, tag := range classBlockTags {
		rules = append(rules, attrRule(tag, "class"))
	}
	for _, tag := range styleTags {
		rules = append(rules, attrRule(tag, "style"))
	}
	return rules
}

// Protector replaces protected spans with placeholder tokens.
type Protector struct {
	rules []Rule
}

// NewProtector returns a Protector using rules, or DefaultRules when none are given.
func NewProtector(rules ...Rule) *Protector {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Protector{rules: rules}
}

// Token returns the placeholder for fragment n.
func Token(n int) string {
	return tokenPrefix + strconv.Itoa(n) + tokenSuffix
}

// Protect swaps every match for a token. Fragments are numbered in the order
// they were captured.
func (p *Protector) Protect(text string) (string, Fragments) {
	var frags Fragments
	for _, rule := range p.rules {
		text = rule.Pattern.ReplaceAllStringFunc(text, func(match string) string {
			frags = append(frags, match)
			return Token(len(frags) - 1)
		})
	}
	return text, frags
}

// Fragments are the captured originals, indexed by token number.
type Fragments []string

// Restore puts every fragment back, including the wrappers a GFM converter
// puts around a bare token. A later fragment may enclose an earlier token, so
// fragments are restored last to first. Tokens wrapped in any other way are
// left in place.
func (f Fragments) Restore(html string) string {
	html = emphasisRunRe.ReplaceAllStringFunc(html, func(run string) string {
		inner := emphasisRunRe.FindStringSubmatch(run)[2]
		var b strings.Builder
		for _, m := range tokenCoreRe.FindAllStringSubmatch(inner, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil || n >= len(f) {
				return run
			}
			b.WriteString(Token(n))
		}
		return b.String()
	})
	for i := len(f) - 1; i >= 0; i-- {
		token := Token(i)
		core := strings.TrimSuffix(strings.TrimPrefix(token, "__"), "__")
		html = strings.NewReplacer(
			"<p>"+token+"</p>", f[i],
			"<p><strong>"+core+"</strong></p>", f[i],
			"<strong>"+core+"</strong>", f[i],
			"<em>"+core+"</em>", f[i],
			"<code>"+token+"</code>", f[i],
			token, f[i],
		).Replace(html)
	}
	return html
}
