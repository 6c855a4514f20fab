// Package classify assigns a category and persona author to candidate
// items via an ordered keyword rule table. The table is deliberately a
// deterministic dispatch, not a learned classifier, so outcomes stay
// reproducible.
package classify

import "strings"

type rule struct {
	categorySlug string
	keywords     []string
}

// Rule order is a committed tie-break: the first rule containing any
// matching keyword wins, regardless of how many later rules also match.
var rules = []rule{
	{"teknoloji-bilim", []string{"yapay zeka", "ai", "teknoloji", "bilim", "uzay", "robot", "yazılım", "internet", "gadget"}},
	{"global-siyaset", []string{"siyaset", "politika", "seçim", "hükümet", "başkan", "diplomat", "uluslararası"}},
	{"ekonomi-finans", []string{"ekonomi", "borsa", "dolar", "euro", "kripto", "bitcoin", "finans", "piyasa", "yatırım"}},
	{"saglik-yasam", []string{"sağlık", "tıp", "doktor", "hastane", "tedavi", "beslenme", "diyet", "wellness"}},
	{"kultur-sanat", []string{"sanat", "müzik", "sinema", "film", "kitap", "edebiyat", "sergi", "konser"}},
	{"spor", []string{"futbol", "basketbol", "spor", "maç", "takım", "şampiyon", "lig", "turnuva"}},
}

// fallbackSlug receives every item no rule claims.
const fallbackSlug = "genel-gundem"

func matchCategorySlug(title, description string) string {
	content := strings.ToLower(title + " " + description)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(content, kw) {
				return r.categorySlug
			}
		}
	}
	return fallbackSlug
}
