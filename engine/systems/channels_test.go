package systems

import (
	"testing"

	"github.com/spaghettifunk/depthmotion/engine/config"
	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
)

func TestChannelTable(t *testing.T) {
	cfg := config.Default().Capture
	channels := ChannelTable(&cfg)
	want := []struct {
		name, tag, dir string
		source         metadata.BuiltinBuffer
		event          metadata.CameraEvent
	}{
		{ChannelView, "_View", "View", metadata.BuiltinBufferCameraTarget, metadata.CameraEventAfterEverything},
		{ChannelDepth, "_Depth", "Depth", metadata.BuiltinBufferDepth, metadata.CameraEventAfterDepthTexture},
		{ChannelMotion, "_Motion", "Motion", metadata.BuiltinBufferMotionVectors, metadata.CameraEventAfterEverything},
	}
	if len(channels) != len(want) {
		t.Fatalf("%d channels, want %d", len(channels), len(want))
	}
	for i, w := range want {
		ch := channels[i]
		if ch.Name != w.name || ch.Tag != w.tag || ch.Dir != w.dir || ch.Source != w.source || ch.AttachPoint != w.event {
			t.Errorf("channel %d = %+v", i, ch)
		}
	}

	cfg.ViewSource = config.ViewSourceMotionVectors
	if got := ChannelTable(&cfg)[0].Source; got != metadata.BuiltinBufferMotionVectors {
		t.Errorf("view source = %s, want MotionVectors", got)
	}
	if got := ChannelTable(&cfg)[0].Tag; got != ViewTag {
		t.Errorf("view tag = %s, want %s", got, ViewTag)
	}
}
