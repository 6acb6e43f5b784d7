package app

import (
	"math/rand"

	"hivemind/internal/domain"
)

// Avatar and color pools. With 12 of each, duplicates only become possible
// once a room grows past the pool size.
var (
	Avatars = []string{"🦊", "🐸", "🦉", "🐙", "🦋", "🐢", "🦁", "🐼", "🐨", "🦄", "🐯", "🐮"}

	Colors = []string{
		"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4",
		"#FFEAA7", "#DDA0DD", "#98D8C8", "#F7DC6F",
		"#BB8FCE", "#85C1E9", "#F8B500", "#58D68D",
	}
)

// PickAppearance assigns an avatar/color pair to a joining player, preferring
// values unused within the room. Each pool falls back to a uniform random
// pick once exhausted. The pair is chosen at join time and stays stable.
func PickAppearance(room *domain.Room) (avatar, color string) {
	usedAvatars := make(map[string]bool)
	usedColors := make(map[string]bool)
	for _, p := range room.PlayersInOrder() {
		usedAvatars[p.Avatar] = true
		usedColors[p.Color] = true
	}

	avatar = Avatars[rand.Intn(len(Avatars))]
	for _, a := range Avatars {
		if !usedAvatars[a] {
			avatar = a
			break
		}
	}

	color = Colors[rand.Intn(len(Colors))]
	for _, c := range Colors {
		if !usedColors[c] {
			color = c
			break
		}
	}

	return avatar, color
}
