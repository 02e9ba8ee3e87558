package render

import (
	"fmt"
	"time"

	"folio/internal/domain/content"
)

// labels are the interface strings of the theme, per language.
var labels = map[content.Lang]map[string]string{
	content.LangFR: {
		"home":           "Accueil",
		"blog":           "Blog",
		"tags":           "Étiquettes",
		"cv":             "CV",
		"featured":       "À la une",
		"recent":         "Articles récents",
		"all_posts":      "Tous les articles",
		"read_more":      "Lire la suite",
		"minutes":        "min de lecture",
		"not_translated": "Cet article n'est disponible qu'en français.",
		"no_posts":       "Aucun article pour le moment.",
		"tagged":         "Articles étiquetés",
		"summary":        "Profil",
		"experience":     "Expérience",
		"education":      "Formation",
		"languages":      "Langues",
		"expertise":      "Expertise",
		"contributions":  "Contributions",
		"projects":       "Projets",
		"skills":         "Compétences",
		"present":        "aujourd'hui",
		"years_old":      "ans",
		"years_exp":      "ans d'expérience",
		"cv_missing":     "Le CV n'est pas disponible.",
		"not_found":      "Page introuvable",
		"back_home":      "Retour à l'accueil",
		"switch_lang":    "English",
		"contents":       "Sommaire",

		"frontend": "Frontend",
		"backend":  "Backend",
		"database": "Bases de données",
		"devops":   "DevOps",
		"tooling":  "Outillage",
		"other":    "Autres",
	},
	content.LangEN: {
		"home":           "Home",
		"blog":           "Blog",
		"tags":           "Tags",
		"cv":             "Resume",
		"featured":       "Featured",
		"recent":         "Recent posts",
		"all_posts":      "All posts",
		"read_more":      "Read more",
		"minutes":        "min read",
		"not_translated": "This article is only available in French.",
		"no_posts":       "No posts yet.",
		"tagged":         "Posts tagged",
		"summary":        "Profile",
		"experience":     "Experience",
		"education":      "Education",
		"languages":      "Languages",
		"expertise":      "Expertise",
		"contributions":  "Contributions",
		"projects":       "Projects",
		"skills":         "Skills",
		"present":        "present",
		"years_old":      "years old",
		"years_exp":      "years of experience",
		"cv_missing":     "The resume is not available.",
		"not_found":      "Page not found",
		"back_home":      "Back to home",
		"switch_lang":    "Français",
		"contents":       "Contents",

		"frontend": "Frontend",
		"backend":  "Backend",
		"database": "Databases",
		"devops":   "DevOps",
		"tooling":  "Tooling",
		"other":    "Other",
	},
}

// Label returns the interface string for key, or key itself when unknown.
func Label(l content.Lang, key string) string {
	if s, ok := labels[l][key]; ok {
		return s
	}
	return key
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// LongDate formats t the way each language writes dates in prose.
func LongDate(l content.Lang, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if l == content.LangEN {
		return t.Format("January 2, 2006")
	}
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}
