package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tendant/simple-cms/internal/domain"
)

var errInvalidSort = errors.New("Invalid sort parameter")

// listQuery is the parsed form of a content listing request
type listQuery struct {
	Filter     domain.ContentFilter
	Sort       []domain.SortField
	Pagination domain.Pagination
}

// parseListQuery reads filters, sort keys and pagination from the query string.
//
// Filters are accepted as categoryId=.. or filters[categoryId]=..; sort as
// sort=title,-createdAt or sort[title]=1&sort[createdAt]=desc. Bracket keys
// keep their order of appearance. Non-numeric or non-positive page and limit
// fall back to the defaults.
func parseListQuery(r *http.Request) (listQuery, error) {
	q := listQuery{
		Pagination: domain.Pagination{
			Page:  positiveInt(r.URL.Query().Get("page"), domain.DefaultPage),
			Limit: positiveInt(r.URL.Query().Get("limit"), domain.DefaultLimit),
		},
	}

	for _, pair := range strings.Split(r.URL.RawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		switch {
		case key == "categoryId" || key == "filters[categoryId]":
			q.Filter.CategoryID = value
		case key == "creatorId" || key == "filters[creatorId]":
			q.Filter.CreatorID = value
		case key == "type" || key == "filters[type]":
			q.Filter.Type = value
		case key == "sort":
			q.Sort = append(q.Sort, parseSortList(value)...)
		case strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]"):
			field := key[len("sort[") : len(key)-1]
			desc, err := parseDirection(value)
			if err != nil {
				return listQuery{}, err
			}
			q.Sort = append(q.Sort, domain.SortField{Field: field, Desc: desc})
		}
	}

	return q, nil
}

func parseSortList(value string) []domain.SortField {
	var fields []domain.SortField
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		part = strings.TrimPrefix(strings.TrimPrefix(part, "-"), "+")
		if part == "" {
			continue
		}
		fields = append(fields, domain.SortField{Field: part, Desc: desc})
	}
	return fields
}

func parseDirection(value string) (desc bool, err error) {
	switch strings.ToLower(value) {
	case "1", "asc", "ascending":
		return false, nil
	case "-1", "desc", "descending":
		return true, nil
	}
	return false, errInvalidSort
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
