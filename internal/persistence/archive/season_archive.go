package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"harvestvalley.farm/internal/persistence/snapshot"
)

type SeasonArchiveMeta struct {
	Season    int    `json:"season"` // seasons elapsed since day 1
	Name      string `json:"name"`
	Day       int    `json:"day"`
	Tick      uint64 `json:"tick"`
	RunID     string `json:"run_id"`
	Money     int    `json:"money"`
	Save      string `json:"save"`
	UpdatedAt string `json:"updated_at"`
}

// SeasonIndex numbers the season a day falls in. The calendar advances the
// season when day%daysPerSeason reaches zero, so days 1..N-1 are season 0.
func SeasonIndex(day, daysPerSeason int) int {
	if daysPerSeason <= 0 || day < 0 {
		return 0
	}
	return day / daysPerSeason
}

// ArchiveSeasonSave copies a save into `farmDir/archives/season_<NNN>/`,
// replacing any earlier copy for the same season. Once the season is over the
// archive holds its last save.
func ArchiveSeasonSave(farmDir, savePath string, save snapshot.SaveV1, daysPerSeason int) (season int, archivedPath string, err error) {
	season = SeasonIndex(save.Time.Day, daysPerSeason)
	archiveDir := filepath.Join(farmDir, "archives", fmt.Sprintf("season_%03d", season))
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return 0, "", err
	}

	dst := filepath.Join(archiveDir, filepath.Base(savePath))
	if err := copyFile(savePath, dst); err != nil {
		return 0, "", err
	}

	meta := SeasonArchiveMeta{
		Season:    season,
		Name:      save.Time.Season,
		Day:       save.Time.Day,
		Tick:      save.Header.Tick,
		RunID:     save.Header.RunID,
		Money:     save.Player.Money,
		Save:      filepath.Base(dst),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if b, err := json.MarshalIndent(meta, "", "  "); err == nil {
		_ = os.WriteFile(filepath.Join(archiveDir, "meta.json"), b, 0o644)
	}
	return season, dst, nil
}

// ReadMeta loads meta.json from one season archive directory.
func ReadMeta(archiveDir string) (SeasonArchiveMeta, error) {
	var m SeasonArchiveMeta
	b, err := os.ReadFile(filepath.Join(archiveDir, "meta.json"))
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(b, &m)
	return m, err
}

// List returns every season archive directory under farmDir in season order.
func List(farmDir string) ([]string, error) {
	out, err := filepath.Glob(filepath.Join(farmDir, "archives", "season_*"))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
