package ui

import (
	"hash/fnv"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/rivo/uniseg"

	"github.com/ahollic/parley/internal/chat"
)

// AvatarSize selects the rendered avatar dimensions.
type AvatarSize int

const (
	AvatarSmall AvatarSize = iota
	AvatarMedium
	AvatarLarge
)

// cells returns the fixed width and height in terminal cells for a size.
func (s AvatarSize) cells() (int, int) {
	switch s {
	case AvatarMedium:
		return 5, 3
	case AvatarLarge:
		return 7, 3
	default:
		return 3, 1
	}
}

// silhouetteGlyph is shown when no identity is known at all.
const silhouetteGlyph = "◯"

// imageBadgeGlyph stands in for an identity's picture; terminals don't
// decode images, so the badge is tinted from the image reference instead.
const imageBadgeGlyph = "▣"

// avatarTints is the palette an image badge tint is picked from. The pick
// is a hash of the image reference, so the same identity always gets the
// same tint.
var avatarTints = []string{
	"#7C3AED", // purple
	"#06B6D4", // cyan
	"#10B981", // green
	"#F59E0B", // amber
	"#EF4444", // red
	"#3B82F6", // blue
	"#EC4899", // pink
}

// tintForImage picks a deterministic tint for an image reference.
func tintForImage(ref string) color.Color {
	h := fnv.New32a()
	h.Write([]byte(ref))
	return lipgloss.Color(avatarTints[h.Sum32()%uint32(len(avatarTints))])
}

// firstGrapheme returns the first user-perceived character of s, so a
// name starting with an emoji or a combining sequence stays intact.
func firstGrapheme(s string) string {
	g := uniseg.NewGraphemes(s)
	if g.Next() {
		return g.Str()
	}
	return ""
}

// RenderAvatar renders an identity as a fixed-size avatar block. Exactly one
// of three shapes is produced: a silhouette when identity is nil, a tinted
// image badge when the identity carries an image reference, or the uppercased
// first grapheme of the display name.
func RenderAvatar(identity *chat.Identity, size AvatarSize) string {
	w, h := size.cells()

	box := lipgloss.NewStyle().
		Width(w).
		Height(h).
		Align(lipgloss.Center, lipgloss.Center)

	switch {
	case identity == nil:
		return box.Inherit(AvatarSilhouetteStyle).Render(silhouetteGlyph)
	case identity.Image != "":
		badge := lipgloss.NewStyle().Foreground(tintForImage(identity.Image))
		return box.Inherit(badge).Render(imageBadgeGlyph)
	default:
		initial := strings.ToUpper(firstGrapheme(strings.TrimSpace(identity.Name)))
		if initial == "" {
			initial = "?"
		}
		return box.Inherit(AvatarInitialStyle).Render(initial)
	}
}
