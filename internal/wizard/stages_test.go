package wizard

import (
	"strings"
	"testing"

	"clipstudio/internal/session"
)

func TestStageReadiness(t *testing.T) {
	script := strings.Repeat("a fact ", 10)
	cases := []struct {
		name     string
		stage    Stage
		settings session.ContentSettings
		ready    bool
	}{
		{"script empty", StageScript, session.ContentSettings{}, false},
		{"script short", StageScript, session.ContentSettings{Script: "hi"}, false},
		{"script ok", StageScript, session.ContentSettings{Script: script}, true},
		{"audio missing", StageAudio, session.ContentSettings{}, false},
		{"audio ok", StageAudio, session.ContentSettings{AudioRef: "/media/audio/a.mp3"}, true},
		{"visual missing", StageVisual, session.ContentSettings{}, false},
		{"visual ok", StageVisual, session.ContentSettings{Images: []string{"/media/images/1.png"}}, true},
		{"effects always ready", StageEffects, session.ContentSettings{}, true},
		{"platforms missing", StagePlatforms, session.ContentSettings{}, false},
		{"platforms ok", StagePlatforms, session.ContentSettings{Platforms: []string{"tiktok"}}, true},
		{"preview missing", StagePreview, session.ContentSettings{}, false},
		{"preview ok", StagePreview, session.ContentSettings{PreviewRef: "/media/videos/v.mp4"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Ready(tc.stage, tc.settings); got != tc.ready {
				t.Errorf("Ready(%s) = %v, want %v (missing: %q)",
					tc.stage, got, tc.ready, MissingRequirement(tc.stage, tc.settings))
			}
		})
	}
}

func TestParseStage(t *testing.T) {
	cases := []struct {
		in   string
		want Stage
	}{
		{"script", StageScript},
		{"1", StageScript},
		{"AUDIO", StageAudio},
		{" 6 ", StagePreview},
		{"preview", StagePreview},
	}
	for _, tc := range cases {
		got, err := ParseStage(tc.in)
		if err != nil {
			t.Errorf("ParseStage(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseStage(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}

	if _, err := ParseStage("7"); err == nil {
		t.Error("expected error for stage 7")
	}
	if _, err := ParseStage("render"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestStageStringRoundTrip(t *testing.T) {
	for _, stage := range Stages() {
		parsed, err := ParseStage(stage.String())
		if err != nil {
			t.Errorf("ParseStage(%s) error: %v", stage, err)
		}
		if parsed != stage {
			t.Errorf("round trip %s -> %s", stage, parsed)
		}
	}
}
