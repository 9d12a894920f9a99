// Package query derives the filtered, sorted view of a record collection and
// the aggregate counts shown alongside it. It never mutates its input.
package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"pantry/internal/freshness"
	"pantry/internal/model"
)

// Filter selects which records survive the category step.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterNear     Filter = "near"
	FilterExpired  Filter = "expired"
	FilterConsumed Filter = "consumed"
)

// Sort selects the ordering of the view.
type Sort string

const (
	SortSoonest Sort = "soonest"
	SortNewest  Sort = "newest"
	SortName    Sort = "name"
)

// Query is the user's current view state.
type Query struct {
	Text   string `json:"text"`
	Filter Filter `json:"filter"`
	Sort   Sort   `json:"sort"`
}

// Counts are computed over the whole collection, not the filtered view.
type Counts struct {
	Total    int `json:"total"`
	Near     int `json:"near"`
	Expired  int `json:"expired"`
	Consumed int `json:"consumed"`
}

// Item is one row of the view with its derived presentation fields.
// DaysUntil is nil when the record has no usable expiry date.
type Item struct {
	model.Record
	Class     freshness.Class `json:"class"`
	Label     string          `json:"label"`
	DaysUntil *int            `json:"daysUntil"`
	DaysLeft  string          `json:"daysLeft"`
}

// Result is the output of Run.
//
// Empty reports an empty view; CollectionEmpty reports that there is nothing
// stored at all. Presentation uses the pair to pick an empty state.
type Result struct {
	Items           []Item `json:"items"`
	Counts          Counts `json:"counts"`
	Empty           bool   `json:"empty"`
	CollectionEmpty bool   `json:"collectionEmpty"`
}

// ParseFilter maps user input to a Filter, defaulting to FilterAll.
func ParseFilter(s string) Filter {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterNear:
		return FilterNear
	case FilterExpired:
		return FilterExpired
	case FilterConsumed:
		return FilterConsumed
	default:
		return FilterAll
	}
}

// ParseSort maps user input to a Sort, defaulting to SortSoonest.
// The short names used by the original web form are accepted as aliases.
func ParseSort(s string) Sort {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SortNewest), "late":
		return SortNewest
	case string(SortName):
		return SortName
	default:
		return SortSoonest
	}
}

// Engine runs queries with a fixed collation language.
type Engine struct {
	tag language.Tag
}

// NewEngine returns an Engine collating names by the given BCP 47 tag.
// An empty or unparseable tag falls back to the root collation.
func NewEngine(lang string) *Engine {
	tag, err := language.Parse(lang)
	if err != nil || lang == "" {
		tag = language.Und
	}
	return &Engine{tag: tag}
}

var defaultEngine = NewEngine("")

// Run evaluates q against records using the root collation.
func Run(records []model.Record, q Query, today time.Time) Result {
	return defaultEngine.Run(records, q, today)
}

// Run evaluates q against records as of today.
func (e *Engine) Run(records []model.Record, q Query, today time.Time) Result {
	res := Result{
		Items:           make([]Item, 0, len(records)),
		Counts:          count(records, today),
		CollectionEmpty: len(records) == 0,
	}

	text := strings.ToLower(strings.TrimSpace(q.Text))
	for _, r := range records {
		if !matchesText(r, text) {
			continue
		}
		class := freshness.Classify(r, today)
		if !matchesFilter(r, class, q.Filter) {
			continue
		}
		res.Items = append(res.Items, newItem(r, class, today))
	}

	e.sortItems(res.Items, q.Sort)
	res.Empty = len(res.Items) == 0
	return res
}

func count(records []model.Record, today time.Time) Counts {
	c := Counts{Total: len(records)}
	for _, r := range records {
		switch freshness.Classify(r, today) {
		case freshness.Near:
			c.Near++
		case freshness.Expired:
			c.Expired++
		}
		if r.Consumed {
			c.Consumed++
		}
	}
	return c
}

func matchesText(r model.Record, text string) bool {
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), text) ||
		strings.Contains(strings.ToLower(r.Category), text)
}

func matchesFilter(r model.Record, class freshness.Class, f Filter) bool {
	switch f {
	case FilterNear:
		return class == freshness.Near
	case FilterExpired:
		return class == freshness.Expired
	case FilterConsumed:
		return r.Consumed
	default:
		return true
	}
}

func newItem(r model.Record, class freshness.Class, today time.Time) Item {
	it := Item{
		Record:   r,
		Class:    class,
		Label:    freshness.Label(class),
		DaysLeft: freshness.DaysLeftText(r.ExpiryDate, today),
	}
	if d := freshness.DaysUntil(r.ExpiryDate, today); freshness.IsFinite(d) {
		it.DaysUntil = &d
	}
	return it
}

// sortItems orders items in place. Ties keep collection order.
func (e *Engine) sortItems(items []Item, mode Sort) {
	switch mode {
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	case SortName:
		// collate.Collator keeps a buffer and is not safe for concurrent use.
		col := collate.New(e.tag)
		sort.SliceStable(items, func(i, j int) bool {
			return col.CompareString(items[i].Name, items[j].Name) < 0
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return distance(items[i]) < distance(items[j])
		})
	}
}

func distance(it Item) int {
	if it.DaysUntil == nil {
		return freshness.Infinite
	}
	return *it.DaysUntil
}
