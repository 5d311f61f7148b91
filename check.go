package prettify

import (
	"fmt"
	"strings"
)

// CheckEncoding validates the characters in an XML declaration's
// encoding="..." value based on the following production rule:
//	[A-Za-z] ([A-Za-z0-9._] | '-')*
func CheckEncoding(encoding string) error {
	if encoding == "" {
		return fmt.Errorf("prettify: empty encoding name")
	}
	for i, rn := range encoding {
		if (rn >= 'A' && rn <= 'Z') ||
			(rn >= 'a' && rn <= 'z') {
			continue
		}
		if i != 0 {
			if rn == '-' || rn == '.' || rn == '_' ||
				(rn >= '0' && rn <= '9') {
				continue
			}
		}
		return fmt.Errorf("prettify: invalid encoding at position %d: %c", i, rn)
	}
	return nil
}

// CheckName ensures a string satisfies the following production
// rules: https://www.w3.org/TR/xml/#NT-NameStartChar, with the exception
// that it does not return an error on an empty string.
func CheckName(name string) error {
	for i, rn := range name {
		if i == 0 {
			if !isNameStartChar(rn) {
				return fmt.Errorf("prettify: invalid name at position %d: %c", i, rn)
			}
		} else if !isNameChar(rn) {
			return fmt.Errorf("prettify: invalid name at position %d: %c", i, rn)
		}
	}
	return nil
}

func isNameStartChar(rn rune) bool {
	switch {
	case rn == ':' || rn == '_' ||
		(rn >= 'A' && rn <= 'Z') || (rn >= 'a' && rn <= 'z'):
		return true
	case rn < 0xC0:
		return false
	}
	return (rn >= 0xC0 && rn <= 0xD6) ||
		(rn >= 0xD8 && rn <= 0xF6) ||
		(rn >= 0xF8 && rn <= 0x2FF) ||
		(rn >= 0x370 && rn <= 0x37D) ||
		(rn >= 0x37F && rn <= 0x1FFF) ||
		(rn >= 0x200C && rn <= 0x200D) ||
		(rn >= 0x2070 && rn <= 0x218F) ||
		(rn >= 0x2C00 && rn <= 0x2FEF) ||
		(rn >= 0x3001 && rn <= 0xD7FF) ||
		(rn >= 0xF900 && rn <= 0xFDCF) ||
		(rn >= 0xFDF0 && rn <= 0xFFFD) ||
		(rn >= 0x10000 && rn <= 0xEFFFF)
}

func isNameChar(rn rune) bool {
	if isNameStartChar(rn) {
		return true
	}
	return rn == '-' || rn == '.' ||
		(rn >= '0' && rn <= '9') ||
		rn == 0xB7 ||
		(rn >= 0x300 && rn <= 0x36F) ||
		(rn >= 0x203F && rn <= 0x2040)
}

// CheckChars ensures a string contains characters which are valid in a text
// node: https://www.w3.org/TR/xml/#NT-Char
func CheckChars(chars string) error {
	if i := invalidChar(chars); i >= 0 {
		return fmt.Errorf("prettify: invalid chars at position %d: %U", i, []rune(chars[i:])[0])
	}
	return nil
}

// invalidChar returns the byte offset of the first rune outside the XML
// character range, or -1.
func invalidChar(s string) int {
	for i, rn := range s {
		if !isInCharacterRange(rn) {
			return i
		}
	}
	return -1
}

// Decide whether the given rune is in the XML Character Range, per
// the Char production of http://www.xml.com/axml/testaxml.htm,
// Section 2.2 Characters.
func isInCharacterRange(r rune) (inrange bool) {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// CheckComment ensures comment content can be placed between "<!--" and
// "-->".
func CheckComment(content string) error {
	if strings.Contains(content, "--") {
		return fmt.Errorf("prettify: comment may not contain '--'")
	}
	if strings.HasSuffix(content, "-") {
		return fmt.Errorf("prettify: comment may not end with '-'")
	}
	return nil
}

// CheckCData ensures content can be placed inside a CDATA section.
func CheckCData(content string) error {
	if strings.Contains(content, "]]>") {
		return fmt.Errorf("prettify: cdata may not contain ']]>'")
	}
	return nil
}

// CheckPI validates a processing instruction's target and content.
func CheckPI(target, content string) error {
	if target == "" {
		return fmt.Errorf("prettify: PI target must not be empty")
	}
	if strings.EqualFold(target, "xml") {
		return fmt.Errorf("prettify: PI target may not be 'xml'")
	}
	if err := CheckName(target); err != nil {
		return err
	}
	if strings.Contains(content, "?>") {
		return fmt.Errorf("prettify: PI content may not contain '?>'")
	}
	return nil
}

// checkReferences ensures every '&' in s starts a well-formed entity or
// character reference. It returns the byte offset of the first bad '&'.
func checkReferences(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			return i, fmt.Errorf("unterminated entity reference")
		}
		ref := s[i+1 : i+end]
		if !isReference(ref) {
			return i, fmt.Errorf("invalid entity reference %q", "&"+ref+";")
		}
		i += end
	}
	return 0, nil
}

func isReference(ref string) bool {
	if strings.HasPrefix(ref, "#x") {
		return len(ref) > 2 && strings.Trim(ref[2:], "0123456789abcdefABCDEF") == ""
	}
	if strings.HasPrefix(ref, "#") {
		return len(ref) > 1 && strings.Trim(ref[1:], "0123456789") == ""
	}
	return ref != "" && CheckName(ref) == nil
}
