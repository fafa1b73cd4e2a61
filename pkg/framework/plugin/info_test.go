package plugin

import (
	"testing"
)

func TestUIDGeneration(t *testing.T) {
	a := Info{ID: "com.justyntemme.handysynth"}
	b := Info{ID: "com.justyntemme.othersynth"}

	if a.UID() != a.UID() {
		t.Error("UID generation is not deterministic")
	}
	if a.UID() == b.UID() {
		t.Error("different IDs produced the same UID")
	}
	if a.UID() == [16]byte{} {
		t.Error("UID is all zeros")
	}
}

func TestValidate(t *testing.T) {
	valid := Info{
		ID:       "com.justyntemme.handysynth",
		Name:     "HandySynth",
		Version:  "1.2.3",
		Vendor:   "justyntemme",
		Category: CategoryInstrument,
	}

	tests := []struct {
		name    string
		mutate  func(*Info)
		wantErr bool
	}{
		{"valid", func(*Info) {}, false},
		{"prerelease", func(i *Info) { i.Version = "1.0.0-beta.1" }, false},
		{"empty id", func(i *Info) { i.ID = "" }, true},
		{"empty name", func(i *Info) { i.Name = "" }, true},
		{"loose version", func(i *Info) { i.Version = "v1.0" }, true},
		{"missing version", func(i *Info) { i.Version = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := valid
			tt.mutate(&info)
			if err := info.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSemVer(t *testing.T) {
	v, err := Info{ID: "x", Version: "2.4.0"}.SemVer()
	if err != nil {
		t.Fatal(err)
	}
	if v.Major() != 2 || v.Minor() != 4 {
		t.Errorf("SemVer() = %v", v)
	}
}
