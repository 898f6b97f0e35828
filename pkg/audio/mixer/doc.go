// ABOUTME: Software mixing package with schedulable voices
// ABOUTME: Provides the playback handles and audio clock used by pkg/loop
// Package mixer renders scheduled clip playback into an audio output.
//
// A Mixer owns a set of voices. Each voice plays one clip and supports
// "start at absolute time T" scheduling plus per-voice gain, which is
// exactly the collaborator surface the loop scheduler needs. The mixer
// clock (Now) advances with rendered frames, so scheduling precision is
// decoupled from the caller's tick cadence.
//
// Example:
//
//	m, _ := mixer.New(output.NewOto(), 48000, 2)
//	go m.Run()
//	v := m.NewVoice()
//	v.SetClip(clip)
//	v.ScheduleStart(m.Now() + 0.1)
package mixer
