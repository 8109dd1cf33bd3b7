package cereal

import (
	"net/netip"
	"strconv"
	"strings"
	"unicode"
)

// MaskType represents a known data format with masking rules.
type MaskType string

const (
	MaskSSN   MaskType = "ssn"   // 123-45-6789 -> ***-**-6789
	MaskEmail MaskType = "email" // alice@example.com -> a***@example.com
	MaskPhone MaskType = "phone" // (555) 123-4567 -> (***) ***-4567
	MaskCard  MaskType = "card"  // 4111111111111111 -> ************1111
	MaskIP    MaskType = "ip"    // 192.168.1.100 -> 192.168.xxx.xxx
	MaskUUID  MaskType = "uuid"  // 550e8400-e29b-... -> 550e8400-****-****-****-************
	MaskIBAN  MaskType = "iban"  // GB82WEST12345698765432 -> GB82**************5432
	MaskName  MaskType = "name"  // John Smith -> J*** S****
)

// Masker applies content-aware masking.
type Masker interface {
	Mask(value string) string
}

// MaskerFunc adapts a function to the Masker interface.
type MaskerFunc func(value string) string

// Mask calls f(value).
func (f MaskerFunc) Mask(value string) string {
	return f(value)
}

// SSNMasker keeps the last four digits of a Social Security Number.
func SSNMasker() Masker {
	return MaskerFunc(func(value string) string {
		digits := extractDigits(value)
		if len(digits) < 4 {
			return stars(value)
		}
		return "***-**-" + digits[len(digits)-4:]
	})
}

// EmailMasker keeps the first character of the local part and the domain.
func EmailMasker() Masker {
	return MaskerFunc(func(value string) string {
		at := strings.LastIndex(value, "@")
		if at < 1 {
			return stars(value)
		}
		return value[:1] + "***" + value[at:]
	})
}

// PhoneMasker keeps the last four digits and the shape of common formats.
func PhoneMasker() Masker {
	return MaskerFunc(func(value string) string {
		digits := extractDigits(value)
		if len(digits) < 4 {
			return stars(value)
		}
		last4 := digits[len(digits)-4:]
		switch {
		case len(digits) >= 10 && strings.HasPrefix(value, "("):
			return "(***) ***-" + last4
		case len(digits) >= 10:
			return "***-***-" + last4
		default:
			return "***-" + last4
		}
	})
}

// CardMasker keeps the last four digits, grouping the masked digits in
// fours when the input is grouped by spaces or dashes.
func CardMasker() Masker {
	return MaskerFunc(func(value string) string {
		digits := extractDigits(value)
		if len(digits) < 4 {
			return stars(value)
		}
		last4 := digits[len(digits)-4:]

		sep := ""
		switch {
		case strings.Contains(value, " "):
			sep = " "
		case strings.Contains(value, "-"):
			sep = "-"
		}
		if sep == "" {
			return strings.Repeat("*", len(digits)-4) + last4
		}

		groups := make([]string, (len(digits)-1)/4, (len(digits)-1)/4+1)
		for i := range groups {
			groups[i] = "****"
		}
		return strings.Join(append(groups, last4), sep)
	})
}

// IPMasker keeps the network half of an address: the first two IPv4
// octets or the first four IPv6 groups.
func IPMasker() Masker {
	return MaskerFunc(func(value string) string {
		addr, err := netip.ParseAddr(value)
		switch {
		case err != nil:
			return stars(value)
		case addr.Is4():
			b := addr.As4()
			return strconv.Itoa(int(b[0])) + "." + strconv.Itoa(int(b[1])) + ".xxx.xxx"
		default:
			groups := strings.Split(addr.StringExpanded(), ":")
			return strings.Join(groups[:4], ":") + ":xxxx:xxxx:xxxx:xxxx"
		}
	})
}

// UUIDMasker keeps the first segment of a UUID.
func UUIDMasker() Masker {
	return MaskerFunc(func(value string) string {
		parts := strings.Split(value, "-")
		if len(parts) != 5 {
			return stars(value)
		}
		return parts[0] + "-****-****-****-************"
	})
}

// IBANMasker keeps the country code, check digits, and last four characters.
func IBANMasker() Masker {
	return MaskerFunc(func(value string) string {
		if len(value) <= 8 {
			return stars(value)
		}
		return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
	})
}

// NameMasker keeps the first letter of each word.
func NameMasker() Masker {
	return MaskerFunc(func(value string) string {
		words := strings.Fields(value)
		for i, word := range words {
			runes := []rune(word)
			words[i] = string(runes[0]) + strings.Repeat("*", len(runes)-1)
		}
		return strings.Join(words, " ")
	})
}

func extractDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func stars(value string) string {
	return strings.Repeat("*", len(value))
}

// builtinMaskers returns the default masker registry.
func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskSSN:   SSNMasker(),
		MaskEmail: EmailMasker(),
		MaskPhone: PhoneMasker(),
		MaskCard:  CardMasker(),
		MaskIP:    IPMasker(),
		MaskUUID:  UUIDMasker(),
		MaskIBAN:  IBANMasker(),
		MaskName:  NameMasker(),
	}
}
