package model

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"strings"
	"testing"
)

func TestValidateRequiresFullName(t *testing.T) {
	doc := Document{}
	if err := doc.Validate(); err == nil {
		t.Fatalf("expected error for missing fullName")
	}
}

func TestValidateDateFormat(t *testing.T) {
	doc := SampleDocument()
	doc.Experience[0].Start = "March 2021"
	err := doc.Validate()
	if err == nil {
		t.Fatalf("expected date format error")
	}
	if !strings.Contains(err.Error(), "experience[0].startDate") {
		t.Fatalf("error %q missing field reference", err)
	}
}

func TestValidateDuplicateIDs(t *testing.T) {
	doc := SampleDocument()
	doc.Skills = append(doc.Skills, Skill{ID: doc.Skills[0].ID, Name: "Duplicate"})
	err := doc.Validate()
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if !strings.Contains(err.Error(), "duplicates") {
		t.Fatalf("error %q not about duplicates", err)
	}
}

func TestValidateSkillLevelEnum(t *testing.T) {
	doc := SampleDocument()
	doc.Skills[0].Level = "ninja"
	if err := doc.Validate(); err == nil {
		t.Fatalf("expected skill level error")
	}
	doc.Skills[0].Level = ""
	if err := doc.Validate(); err != nil {
		t.Fatalf("empty level should be allowed: %v", err)
	}
}

func TestSkillLevelPercent(t *testing.T) {
	cases := map[SkillLevel]int{
		LevelBeginner:     25,
		LevelIntermediate: 50,
		LevelAdvanced:     75,
		LevelExpert:       100,
		SkillLevel(""):    0,
	}
	for level, want := range cases {
		if got := level.Percent(); got != want {
			t.Fatalf("Percent(%q) = %d, want %d", level, got, want)
		}
	}
}

func TestSamplesAreDeterministicAndValid(t *testing.T) {
	for _, profession := range []string{"", "developer", "designer", "marketing", "unknown"} {
		first := SampleFor(profession)
		second := SampleFor(profession)

		a, _ := json.Marshal(first)
		b, _ := json.Marshal(second)
		if !bytes.Equal(a, b) {
			t.Fatalf("sample for %q is not deterministic", profession)
		}
		if err := first.Validate(); err != nil {
			t.Fatalf("sample for %q invalid: %v", profession, err)
		}
	}
}

func TestUpsertExperienceGeneratesStableID(t *testing.T) {
	doc := Document{PersonalInfo: PersonalInfo{FullName: "Ada"}}

	id := doc.UpsertExperience(Experience{Company: "First Co"})
	if id == "" {
		t.Fatalf("expected generated id")
	}

	doc.UpsertExperience(Experience{ID: id, Company: "Renamed Co"})
	if len(doc.Experience) != 1 {
		t.Fatalf("update created a new entry: %d entries", len(doc.Experience))
	}
	if doc.Experience[0].Company != "Renamed Co" {
		t.Fatalf("update did not apply: %q", doc.Experience[0].Company)
	}
	if doc.Experience[0].ID != id {
		t.Fatalf("id changed across edit")
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	doc := Document{PersonalInfo: PersonalInfo{FullName: "Ada"}}
	doc.UpsertSkill(Skill{ID: "a", Name: "A"})
	doc.UpsertSkill(Skill{ID: "b", Name: "B"})
	doc.UpsertSkill(Skill{ID: "c", Name: "C"})

	if !doc.RemoveSkill("b") {
		t.Fatalf("remove failed")
	}
	if len(doc.Skills) != 2 || doc.Skills[0].ID != "a" || doc.Skills[1].ID != "c" {
		t.Fatalf("order not preserved: %v", doc.Skills)
	}
	if doc.RemoveSkill("missing") {
		t.Fatalf("removing unknown id should report false")
	}
}

func TestPhotoBytesDataURI(t *testing.T) {
	info := PersonalInfo{Photo: "data:image/png;base64," + testPNGBase64(t)}
	data, format, err := info.PhotoBytes()
	if err != nil {
		t.Fatalf("photo decode failed: %v", err)
	}
	if format != "png" {
		t.Fatalf("format = %q, want png", format)
	}
	if len(data) == 0 {
		t.Fatalf("empty photo payload")
	}
}

func TestPhotoBytesBareBase64(t *testing.T) {
	info := PersonalInfo{Photo: testPNGBase64(t)}
	if _, format, err := info.PhotoBytes(); err != nil || format != "png" {
		t.Fatalf("bare base64 decode failed: format=%q err=%v", format, err)
	}
}

func TestPhotoBytesAbsent(t *testing.T) {
	info := PersonalInfo{}
	if _, _, err := info.PhotoBytes(); err != ErrNoPhoto {
		t.Fatalf("err = %v, want ErrNoPhoto", err)
	}
}

func TestPhotoBytesGarbage(t *testing.T) {
	info := PersonalInfo{Photo: "data:image/png;base64,%%%%"}
	if _, _, err := info.PhotoBytes(); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestValidateJSONSchema(t *testing.T) {
	good, err := json.Marshal(SampleDocument())
	if err != nil {
		t.Fatalf("marshal sample: %v", err)
	}
	if err := ValidateJSON(good); err != nil {
		t.Fatalf("sample should pass schema: %v", err)
	}

	bad := []byte(`{"personalInfo":{"fullName":""},"skills":[{"name":"Go","level":"ninja"}]}`)
	if err := ValidateJSON(bad); err == nil {
		t.Fatalf("expected schema failure for bad payload")
	}
}

func testPNGBase64(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
