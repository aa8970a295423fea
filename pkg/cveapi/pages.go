package cveapi

import (
	"context"
	"net/url"
	"strconv"

	"golang.org/x/xerrors"
)

// PageIterator walks a paged collection endpoint as one continuous sequence.
// Pages are fetched lazily while the consumer advances, so stopping early
// avoids fetching the remaining pages. The iterator is single-pass; issue a
// fresh List call to start over.
//
//	it := client.ListUsers(ctx)
//	for it.Next() {
//		user := it.Item()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
//
// CVE Services carries page items under an attribute named after the queried
// resource and points at the next page with a nextPage token; a null token
// marks the last page.
type PageIterator struct {
	client   *Client
	ctx      context.Context
	path     string
	dataAttr string
	params   url.Values

	items []interface{}
	item  map[string]interface{}
	done  bool
	err   error
}

func (c *Client) newPageIterator(ctx context.Context, path, dataAttr string, params url.Values) *PageIterator {
	if params == nil {
		params = url.Values{}
	}
	return &PageIterator{
		client:   c,
		ctx:      ctx,
		path:     path,
		dataAttr: dataAttr,
		params:   params,
	}
}

// Next advances to the next item, fetching the next page when the current
// one is exhausted. It returns false when the sequence ends or a fetch
// fails; Err tells the two apart.
func (it *PageIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for len(it.items) == 0 {
		if it.done {
			return false
		}
		if !it.fetchPage() {
			return false
		}
	}

	item, ok := it.items[0].(map[string]interface{})
	it.items = it.items[1:]
	if !ok {
		it.err = xerrors.Errorf("malformed %s entry in paged response", it.dataAttr)
		return false
	}
	it.item = item
	return true
}

// Item returns the item Next advanced to. Only valid after Next returned true.
func (it *PageIterator) Item() map[string]interface{} {
	return it.item
}

// Err returns the first error hit while iterating, if any.
func (it *PageIterator) Err() error {
	return it.err
}

func (it *PageIterator) fetchPage() bool {
	page, err := it.client.get(it.ctx, it.path, it.params)
	if err != nil {
		it.err = err
		return false
	}

	items, _ := page[it.dataAttr].([]interface{})
	it.items = items

	// Small responses carry no pagination attributes at all; treat them the
	// same as a null nextPage.
	switch next := page["nextPage"].(type) {
	case float64:
		it.params.Set("page", strconv.Itoa(int(next)))
	case string:
		it.params.Set("page", next)
	default:
		it.done = true
	}
	return true
}
