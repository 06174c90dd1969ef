package domain

type BannerKind string

const (
	BannerCover  BannerKind = "cover"
	BannerButton BannerKind = "button"
)

// Banner is a promotional image shown on the storefront.
type Banner struct {
	ID       int64
	Kind     BannerKind
	ImageURL string
	Title    string
}
