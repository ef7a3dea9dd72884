package main

import (
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/ahinestrog/bookcatalog/api/catalog"
	"github.com/dustin/go-humanize"
)

func formatMoney(m catalog.Money) string {
	return "$" + humanize.FormatFloat("#,###.##", m.Float())
}

func formatCount(n int) string { return humanize.Comma(int64(n)) }

var funcs = template.FuncMap{
	"money": formatMoney,
	"count": formatCount,
	"year":  func() int { return time.Now().Year() },
}

// safeReturn accepts only local paths as redirect targets.
func safeReturn(target, def string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return def
	}
	if u, err := url.Parse(target); err != nil || u.Host != "" || u.Scheme != "" {
		return def
	}
	return target
}

func withMsg(path, msg string) string {
	return path + "?" + url.Values{"msg": {msg}}.Encode()
}
