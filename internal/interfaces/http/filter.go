package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	dateLayout      = "2006-01-02"
)

// FilterState estado de filtros y paginación de un listado. Viaja en la URL: DecodeFilter lo
// lee del query string y Encode produce su forma canónica (claves ordenadas, sin valores por defecto).
type FilterState struct {
	Page       int
	PageSize   int
	Search     string
	LocationID string
	Status     string
	Channel    string
	Category   string
	From       *time.Time
	To         *time.Time
}

// DecodeFilter interpreta page, page_size, search, location_id, status, channel, category,
// from y to. Fechas en YYYY-MM-DD (to incluye el día completo) o RFC3339.
func DecodeFilter(q url.Values) (FilterState, error) {
	f := FilterState{
		Page:       1,
		PageSize:   defaultPageSize,
		Search:     strings.TrimSpace(q.Get("search")),
		LocationID: q.Get("location_id"),
		Status:     strings.ToUpper(q.Get("status")),
		Channel:    strings.ToUpper(q.Get("channel")),
		Category:   q.Get("category"),
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return FilterState{}, fmt.Errorf("page inválido: %q", v)
		}
		f.Page = n
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return FilterState{}, fmt.Errorf("page_size inválido: %q", v)
		}
		f.PageSize = min(n, maxPageSize)
	}
	var err error
	if f.From, err = parseDate(q.Get("from"), false); err != nil {
		return FilterState{}, fmt.Errorf("from inválido: %w", err)
	}
	if f.To, err = parseDate(q.Get("to"), true); err != nil {
		return FilterState{}, fmt.Errorf("to inválido: %w", err)
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return FilterState{}, fmt.Errorf("to anterior a from")
	}
	return f, nil
}

// Encode forma canónica del filtro. DecodeFilter(Encode(f)) devuelve f.
func (f FilterState) Encode() string {
	q := url.Values{}
	if f.Page > 1 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 && f.PageSize != defaultPageSize {
		q.Set("page_size", strconv.Itoa(f.PageSize))
	}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("search", f.Search)
	set("location_id", f.LocationID)
	set("status", f.Status)
	set("channel", f.Channel)
	set("category", f.Category)
	if f.From != nil {
		q.Set("from", f.From.UTC().Format(time.RFC3339Nano))
	}
	if f.To != nil {
		q.Set("to", f.To.UTC().Format(time.RFC3339Nano))
	}
	return q.Encode()
}

// ListFilter traduce página/tamaño a limit/offset del repositorio.
func (f FilterState) ListFilter() repository.ListFilter {
	size := f.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	page := max(f.Page, 1)
	return repository.ListFilter{
		Limit:      size,
		Offset:     (page - 1) * size,
		Search:     f.Search,
		LocationID: f.LocationID,
		Status:     f.Status,
		Channel:    f.Channel,
		Category:   f.Category,
		From:       f.From,
		To:         f.To,
	}
}

func parseDate(v string, endOfDay bool) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
