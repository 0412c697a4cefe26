package finder

// Source is one authoritative site that can host a sameAs target for a
// drug. URL templates may reference {name}, {generic}, and {term}; {term}
// expands to the generic name when present, the brand name otherwise.
type Source struct {
	Name        string `toml:"name"`
	URLTemplate string `toml:"url_template"`
	SiteType    string `toml:"site_type"`
	Category    string `toml:"category"`
	Priority    string `toml:"priority"`
}

// Priority labels, strongest first.
const (
	PriorityVeryHigh = "Very High"
	PriorityHigh     = "High"
	PriorityMedium   = "Medium"
	PriorityLow      = "Low"
)

// DefaultCatalog lists the built-in authoritative sources, grouped by the
// categories trusted indexers tend to cite. A TOML catalog in the config
// file overrides it wholesale.
func DefaultCatalog() []Source {
	return []Source{
		{
			Name:        "DrugBank",
			URLTemplate: "https://go.drugbank.com/unearth/q?query={term}&searcher=drugs",
			SiteType:    "Drug Database",
			Category:    "Chemical & Pharmacological Databases",
			Priority:    PriorityHigh,
		},
		{
			Name:        "PubChem",
			URLTemplate: "https://pubchem.ncbi.nlm.nih.gov/#query={term}",
			SiteType:    "Chemical Database",
			Category:    "Chemical & Pharmacological Databases",
			Priority:    PriorityHigh,
		},
		{
			Name:        "ChEMBL",
			URLTemplate: "https://www.ebi.ac.uk/chembl/g/#search_results/all/query={term}",
			SiteType:    "Bioactivity Database",
			Category:    "Chemical & Pharmacological Databases",
			Priority:    PriorityMedium,
		},
		{
			Name:        "FDA",
			URLTemplate: "https://www.fda.gov/drugs/postmarket-drug-safety-information-patients-and-providers/{name}-{generic}-information",
			SiteType:    "Regulatory Information",
			Category:    "Regulatory & Clinical Sources",
			Priority:    PriorityVeryHigh,
		},
		{
			Name:        "ClinicalTrials.gov",
			URLTemplate: "https://clinicaltrials.gov/search?term={term}",
			SiteType:    "Clinical Trials",
			Category:    "Regulatory & Clinical Sources",
			Priority:    PriorityHigh,
		},
		{
			Name:        "DailyMed",
			URLTemplate: "https://dailymed.nlm.nih.gov/dailymed/search.cfm?query={term}",
			SiteType:    "Label Information",
			Category:    "Regulatory & Clinical Sources",
			Priority:    PriorityHigh,
		},
		{
			Name:        "Wikidata",
			URLTemplate: "https://www.wikidata.org/w/index.php?search={term}",
			SiteType:    "Knowledge Graph",
			Category:    "Medical Knowledge Graphs",
			Priority:    PriorityMedium,
		},
		{
			Name:        "Wikipedia",
			URLTemplate: "https://en.wikipedia.org/wiki/{term}",
			SiteType:    "Encyclopedia",
			Category:    "Medical Knowledge Graphs",
			Priority:    PriorityMedium,
		},
		{
			Name:        "MeSH",
			URLTemplate: "https://meshb.nlm.nih.gov/search?searchInField=termDescriptor&query={term}",
			SiteType:    "Medical Ontology",
			Category:    "Standardized Ontologies",
			Priority:    PriorityHigh,
		},
		{
			Name:        "WHO ATC",
			URLTemplate: "https://www.whocc.no/atc_ddd_index/?name={term}",
			SiteType:    "Classification System",
			Category:    "Standardized Ontologies",
			Priority:    PriorityMedium,
		},
		{
			Name:        "PubMed",
			URLTemplate: "https://pubmed.ncbi.nlm.nih.gov/?term={term}+clinical+trial",
			SiteType:    "Research Database",
			Category:    "Research & Publications",
			Priority:    PriorityHigh,
		},
	}
}

// priorityRank orders candidates for ranking. Unknown labels sort last.
func priorityRank(p string) int {
	switch p {
	case PriorityVeryHigh:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}
