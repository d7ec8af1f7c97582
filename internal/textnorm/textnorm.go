// Package textnorm normalizes Vietnamese user input before keyword matching.
//
// Scraped pages and user questions mix Unicode composition forms (NFC vs NFD
// diacritics) and campus shorthand ("cntt", "sict", "hp"). Matching happens
// on the normalized form so keyword policies stay small.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// abbreviations maps campus shorthand to its expanded form. Lookup is done on
// whole words after lowercasing.
var abbreviations = map[string]string{
	// degrees and roles
	"sv":  "sinh viên",
	"gv":  "giảng viên",
	"ths": "thạc sĩ",
	"đh":  "đại học",
	"cđ":  "cao đẳng",

	// programs
	"cntt": "công nghệ thông tin",
	"khmt": "khoa học máy tính",
	"ktpm": "kỹ thuật phần mềm",
	"httt": "hệ thống thông tin",
	"attt": "an toàn thông tin",

	// institutions
	"haui":   "đại học công nghiệp hà nội",
	"sict":   "trường công nghệ thông tin và truyền thông",
	"dhcnhn": "đại học công nghiệp hà nội",

	// administration
	"hp":   "học phí",
	"hk":   "học kỳ",
	"tkb":  "thời khóa biểu",
	"đkhp": "đăng ký học phần",
	"ctđt": "chương trình đào tạo",
}

const trimSet = ",.?!:;\"'()[]{}"

// Normalize lowercases, applies Unicode NFC and expands known abbreviations.
// The result is suitable for substring keyword matching, not for display.
func Normalize(s string) string {
	s = norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
	if s == "" {
		return ""
	}

	words := strings.Fields(s)
	for i, w := range words {
		bare := strings.Trim(w, trimSet)
		if bare == "" {
			continue
		}
		if full, ok := abbreviations[bare]; ok {
			words[i] = strings.Replace(w, bare, full, 1)
		}
	}
	return strings.Join(words, " ")
}
