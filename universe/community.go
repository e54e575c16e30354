// Package universe holds the communities shown as planets and the user session that
// turns selections into camera focus animations.
package universe

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// DefaultBannerURL is used for communities created without a banner.
const DefaultBannerURL = "https://images.unsplash.com/photo-1451187580459-43490279c0fa?w=1200&h=300&fit=crop"

// CommunityTypes lists the categories a new community can be created with.
var CommunityTypes = []string{
	"Gaming",
	"Art & Design",
	"Music",
	"Technology",
	"Sports",
	"Finance",
	"Lifestyle",
	"Travel",
	"Education",
	"Science",
	"Health",
	"Entertainment",
	"Other",
}

// palette alternates planet colors for created communities.
var palette = []string{"#28f5cc", "#04ad7b"}

// Community is one social community and the parameters of its planet.
type Community struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Members     int
	Description string
	Color       string
	Size        float32
	Anchor      mgl32.Vec3
	OrbitSpeed  float32
	OrbitRadius float32
	Joined      bool
	BannerURL   string
}

// CreateRequest carries the fields of the community creation form.
type CreateRequest struct {
	Name        string
	Description string
	Type        string
	BannerURL   string
}

func validType(t string) bool {
	for _, ct := range CommunityTypes {
		if ct == t {
			return true
		}
	}
	return false
}
