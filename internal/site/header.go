package site

import "github.com/roach88/vcashweb/internal/i18n"

// Link is one header navigation entry.
type Link struct {
	Href     string `json:"href"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	External bool   `json:"external,omitempty"`
}

// Header is the translated page chrome shared by every page.
type Header struct {
	Title string `json:"title"`
	Links []Link `json:"links"`
}

// NewHeader translates the header for one page.
func NewHeader(tr *i18n.Translator) Header {
	return Header{
		Title: "Vcash - " + tr.T("decentralizedMoney"),
		Links: []Link{
			{Href: "/news", Label: tr.T("news"), Icon: "speaker_notes"},
			{Href: "/network", Label: tr.T("network"), Icon: "public"},
			{Href: "https://docs.vcash.info", Label: tr.T("docs"), Icon: "dvr", External: true},
			{Href: "https://blog.vcash.info", Label: tr.T("blog"), Icon: "rate_review", External: true},
			{Href: "https://forum.vcash.info", Label: tr.T("forum"), Icon: "forum", External: true},
		},
	}
}
