// Package whatsapp builds click-to-chat and click-to-call links from the phone
// numbers customers give, which are usually written in local format.
package whatsapp

import (
	"net/url"
	"strings"
	"unicode"
)

const DefaultCountryCode = "234"

type Links struct {
	Phone    string `json:"phone"`
	Call     string `json:"call"`
	WhatsApp string `json:"whatsapp"`
	SMS      string `json:"sms"`
}

// Formatter normalizes local numbers for one country code.
type Formatter struct {
	CountryCode string
}

func NewFormatter(countryCode string) *Formatter {
	countryCode = strings.TrimPrefix(strings.TrimSpace(countryCode), "+")
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return &Formatter{CountryCode: countryCode}
}

// FormatPhone converts a number to international format.
// Whitespace is removed; a leading 0 is replaced by +<code>; a number that already
// starts with the country code gains a +. Anything else is returned without whitespace.
func (f *Formatter) FormatPhone(phone string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)

	if strings.HasPrefix(clean, "0") {
		return "+" + f.CountryCode + clean[1:]
	}
	if strings.HasPrefix(clean, f.CountryCode) {
		return "+" + clean
	}
	return clean
}

// ChatLink returns the wa.me link for phone, optionally with a prefilled message.
func (f *Formatter) ChatLink(phone, message string) string {
	link := "https://wa.me/" + f.FormatPhone(phone)
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}

// CallLink dials the number as the customer wrote it.
func (f *Formatter) CallLink(phone string) string {
	return "tel:" + strings.TrimSpace(phone)
}

func (f *Formatter) SMSLink(phone string) string {
	return "sms:" + f.FormatPhone(phone)
}

func (f *Formatter) Links(phone string) Links {
	return Links{
		Phone:    f.FormatPhone(phone),
		Call:     f.CallLink(phone),
		WhatsApp: f.ChatLink(phone, ""),
		SMS:      f.SMSLink(phone),
	}
}
