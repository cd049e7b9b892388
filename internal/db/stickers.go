package db

import (
	"encoding/csv"
	"os"
	"strings"

	"gorm.io/gorm"
)

type stickerRecord struct {
	Name     string
	ImageURL string
}

// LoadStickerCatalog reads sticker assets from a CSV and upserts them into
// the stickers table. Existing names are left untouched.
func LoadStickerCatalog(conn *gorm.DB, path string) (int, error) {
	if conn == nil {
		return 0, nil
	}
	records, err := readStickers(path)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, record := range records {
		entry := Sticker{
			Name:     record.Name,
			ImageURL: record.ImageURL,
		}
		if err := conn.FirstOrCreate(&entry, Sticker{Name: entry.Name}).Error; err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func readStickers(path string) ([]stickerRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []stickerRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		url := strings.TrimSpace(row[1])
		if name == "" || url == "" {
			continue
		}
		records = append(records, stickerRecord{Name: name, ImageURL: url})
	}
	return records, nil
}
