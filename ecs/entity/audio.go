package entity

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/shelfsort/assets"
	"github.com/milk9111/shelfsort/ecs/component"
	"github.com/milk9111/shelfsort/prefabs"
	"go.uber.org/zap"
)

// loadAudioPlayer is swapped out in tests that have no audio device.
var loadAudioPlayer = assets.LoadAudioPlayer

// buildAudioComponent loads every clip. A clip that fails to load keeps its
// slot with a nil player so the item still works, just silently.
func buildAudioComponent(clips []prefabs.AudioClipSpec, prefabPath string) *component.Audio {
	n := len(clips)
	names := make([]string, 0, n)
	players := make([]*audio.Player, 0, n)
	volume := make([]float64, 0, n)

	for _, clip := range clips {
		player, err := loadAudioPlayer(clip.File)
		if err != nil {
			zap.L().Warn("audio clip unavailable",
				zap.String("prefab", prefabPath),
				zap.String("clip", clip.Name),
				zap.String("file", clip.File),
				zap.Error(err),
			)
			player = nil
		}
		vol := clip.Volume
		if vol <= 0 {
			vol = 1
		}
		names = append(names, clip.Name)
		players = append(players, player)
		volume = append(volume, vol)
	}

	return &component.Audio{
		Names:   names,
		Players: players,
		Volume:  volume,
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
	}
}
