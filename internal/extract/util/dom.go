package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FirstByClass returns the first element under root whose class attribute
// contains substr, case-insensitively, or nil.
func FirstByClass(root *goquery.Selection, substr string) *goquery.Selection {
	var found *goquery.Selection
	root.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.AttrOr("class", "")), substr) {
			found = s
			return false
		}
		return true
	})
	return found
}

// FirstByID is FirstByClass for id attributes.
func FirstByID(root *goquery.Selection, substr string) *goquery.Selection {
	var found *goquery.Selection
	root.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.AttrOr("id", "")), substr) {
			found = s
			return false
		}
		return true
	})
	return found
}
