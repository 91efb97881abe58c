package service

import (
	"github.com/noah-isme/exam-notify-api/internal/models"
)

// Rank computes overall and per-class competition ranks for every row of an
// exam table. CalcTotal sums the numeric subject values with missing treated
// as zero; it exists for ranking only and is never the total a parent sees.
// Rows without a single numeric subject value are excluded from the ranking
// population and carry nil ranks.
func Rank(table *models.ScoreTable, desc models.ColumnDescriptor) []models.RankedRow {
	if table == nil {
		return nil
	}

	ranked := make([]models.RankedRow, len(table.Rows))
	for i, row := range table.Rows {
		r := models.RankedRow{Row: row}
		if desc.NameCol != "" {
			r.StudentName = row[desc.NameCol].String()
		}
		if desc.ClassCol != "" {
			r.Class = row[desc.ClassCol].String()
		}
		for _, col := range desc.SubjectCols {
			cell := row[col]
			if cell.IsNumeric() {
				r.CalcTotal += cell.Num
				r.HasCalc = true
			}
		}
		ranked[i] = r
	}

	all := eligibleIndices(ranked, nil)
	for _, i := range all {
		rank := competitionRank(ranked, all, i)
		ranked[i].OverallRank = &rank
		ranked[i].OverallSize = len(all)
	}

	if desc.ClassCol != "" {
		groups := make(map[string][]int)
		for i := range ranked {
			groups[ranked[i].Class] = append(groups[ranked[i].Class], i)
		}
		for _, members := range groups {
			population := eligibleIndices(ranked, members)
			for _, i := range population {
				rank := competitionRank(ranked, population, i)
				ranked[i].ClassRank = &rank
				ranked[i].ClassSize = len(population)
			}
		}
	}

	return ranked
}

// eligibleIndices returns the indices with a valid calc total, restricted to
// the given member set when non-nil.
func eligibleIndices(rows []models.RankedRow, members []int) []int {
	var population []int
	if members == nil {
		for i := range rows {
			if rows[i].HasCalc {
				population = append(population, i)
			}
		}
		return population
	}
	for _, i := range members {
		if rows[i].HasCalc {
			population = append(population, i)
		}
	}
	return population
}

// competitionRank implements "min" ranking: 1 plus the count of strictly
// higher totals, so ties share the better rank ([90,90,80] -> [1,1,3]).
func competitionRank(rows []models.RankedRow, population []int, idx int) int {
	rank := 1
	for _, j := range population {
		if rows[j].CalcTotal > rows[idx].CalcTotal {
			rank++
		}
	}
	return rank
}
