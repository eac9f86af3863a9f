package game

import (
	"os"

	htgotts "github.com/hegedustibor/htgo-tts"
	handlers "github.com/hegedustibor/htgo-tts/handlers"
	voices "github.com/hegedustibor/htgo-tts/voices"
)

// Speaker announces game events out loud. Speech is best effort and runs in
// the background so a missing player binary never stalls a turn.
type Speaker struct {
	sound bool
}

// NewSpeaker constructs a speaker with the sound on or off.
func NewSpeaker(sound bool) *Speaker {
	return &Speaker{sound: sound}
}

// Toggle turns the sound on or off and reports the new setting.
func (s *Speaker) Toggle() bool {
	s.sound = !s.sound
	return s.sound
}

// On reports whether the sound is on.
func (s *Speaker) On() bool {
	return s.sound
}

// Say speaks the specified message when the sound is on.
func (s *Speaker) Say(msg string) {
	if !s.sound {
		return
	}

	go func() {
		speech := htgotts.Speech{Folder: "audio", Language: voices.English, Handler: &handlers.MPlayer{}}

		os.Remove("audio/speech.mp3")

		fileName, err := speech.CreateSpeechFile(msg, "speech")
		if err != nil {
			return
		}

		defer os.Remove("audio/speech.mp3")

		speech.PlaySpeechFile(fileName)
	}()
}
