package service

import (
	"github.com/noah-isme/ncc-parade-api/internal/models"
)

// ManualMarks maps cadet IDs to the "marked present" toggle captured by a
// submitting senior. Cadets missing from the map are unmarked.
type ManualMarks map[string]bool

// ReconcileAttendance merges the roster, the permission ledger and the manual
// marks into one authoritative classification per roster entry. It performs no
// I/O. Precedence per cadet:
//
//  1. a permission covering the parade wins, regardless of the manual mark,
//     and carries the permission's reason
//  2. otherwise a manual mark classifies the cadet present
//  3. otherwise the cadet is absent without permission
//
// The output covers every roster entry exactly once, in roster order.
func ReconcileAttendance(parade *models.Parade, roster []models.Cadet, permissions []models.Permission, marks ManualMarks) []models.AttendanceInput {
	covering := make(map[string]*models.Permission, len(permissions))
	for i := range permissions {
		p := &permissions[i]
		if !p.Covers(parade.ID, parade.ParadeDate) {
			continue
		}
		if _, ok := covering[p.CadetID]; !ok {
			covering[p.CadetID] = p
		}
	}

	records := make([]models.AttendanceInput, 0, len(roster))
	for _, cadet := range roster {
		if permission, ok := covering[cadet.ID]; ok {
			reason := string(permission.Reason)
			records = append(records, models.AttendanceInput{
				CadetID: cadet.ID,
				Status:  models.AttendanceWithPermission,
				Reason:  &reason,
			})
			continue
		}

		status := models.AttendanceWithoutPermission
		if marks[cadet.ID] {
			status = models.AttendancePresent
		}
		records = append(records, models.AttendanceInput{CadetID: cadet.ID, Status: status})
	}

	return records
}

// SummarizeBatch counts a reconciled batch the way the submitting screen
// echoes it back.
func SummarizeBatch(records []models.AttendanceInput) models.SubmissionSummary {
	summary := models.SubmissionSummary{Total: len(records)}
	for _, record := range records {
		switch record.Status {
		case models.AttendancePresent:
			summary.Present++
		case models.AttendanceWithPermission:
			summary.Permission++
		case models.AttendanceWithoutPermission:
			summary.Absent++
		}
	}
	return summary
}
