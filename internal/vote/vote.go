package vote

// Session identifies one voting day on the archive index page. Date is the
// literal calendar text and is compared as a plain string.
type Session struct {
	Link string `json:"link"`
	Date string `json:"date"`
}

// Record is the normalized result of scraping one vote detail page.
// Only URL and Date are guaranteed; empty fields mean the page did not
// expose them in any recognized markup variant.
type Record struct {
	URL     string   `json:"url"`
	ID      string   `json:"id,omitempty"`
	Title   string   `json:"title,omitempty"`
	Link    string   `json:"link,omitempty"`
	Authors []string `json:"authors,omitempty"`
	Result  string   `json:"result,omitempty"`
	Votes   []string `json:"votes,omitempty"`
	Date    string   `json:"date"`
}
