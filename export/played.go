// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export renders a room's play history as a spreadsheet.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/dailyfictions/catalog"
	"github.com/danielhkuo/dailyfictions/models"
	"github.com/danielhkuo/dailyfictions/rooms"
)

var headers = []string{"#", "Movie ID", "Title", "Locked At (UTC)"}

// PlayedWorkbook writes one sheet named after the room, most recent first.
// Titles come from movies when present.
func PlayedWorkbook(room rooms.Room, played []models.PlayedEntry, movies map[int64]catalog.Movie) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := writePlayed(f, room.Name, played, movies); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writePlayed(f *excelize.File, sheet string, played []models.PlayedEntry, movies map[int64]catalog.Movie) error {
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, e := range played {
		row := i + 2
		values := []any{i + 1, e.MovieID, movies[e.MovieID].Title, e.LockedAt.UTC().Format(time.DateTime)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	if err := f.SetColWidth(sheet, "C", "C", 40); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}

// Filename is the download name for a room's history
func Filename(room rooms.Room, now time.Time) string {
	return fmt.Sprintf("%s-played-%s.xlsx", room.Slug, now.UTC().Format("2006-01-02"))
}
