package distribute

import "testing"

func TestRenderCaption(t *testing.T) {
	got := RenderCaption("{title} | {hashtags}", "My Clip", []string{"fyp", "viral"}, 0)
	if got != "My Clip | #fyp #viral" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderCaptionDefaultTemplate(t *testing.T) {
	got := RenderCaption("", "My Clip", []string{"fyp"}, 0)
	if got != "My Clip\n\n#fyp" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderCaptionHashtagLimit(t *testing.T) {
	got := RenderCaption("{hashtags}", "t", []string{"a", "b", "c", "d"}, 2)
	if got != "#a #b" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderCaptionNormalizesHashtags(t *testing.T) {
	got := RenderCaption("{hashtags}", "t", []string{"#already", "", "  ", "plain"}, 0)
	if got != "#already #plain" {
		t.Fatalf("got %q", got)
	}
}

func TestTitleFromFile(t *testing.T) {
	cases := map[string]string{
		"/tmp/my_great_video.mp4": "My Great Video",
		"some-clip.final.mp4":     "Some Clip Final",
		"shouting.mp4":            "Shouting",
		"....mp4":                 "Untitled",
	}
	for path, want := range cases {
		if got := TitleFromFile(path); got != want {
			t.Errorf("TitleFromFile(%q) = %q, want %q", path, got, want)
		}
	}
}
