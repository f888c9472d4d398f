package component

// MusicRequest is a one-shot request for music playback. An empty Track
// stops all music.
type MusicRequest struct {
	Track string
}

var MusicRequestComponent = NewComponent[MusicRequest]()

// AmbientSource is the point of interest a proximity fader measures the
// player against.
type AmbientSource struct {
	Track string
}

var AmbientSourceComponent = NewComponent[AmbientSource]()
