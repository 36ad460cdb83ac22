package program

import (
	"testing"

	programModels "peakform/models/program"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedEnrolledProgram saves a program with the given course titles and
// enrolls the user, returning the program and enrollment ids
func seedEnrolledProgram(t *testing.T, db *gorm.DB, userID uint, courseTitles ...string) (uuid.UUID, uuid.UUID) {
	t.Helper()

	graph := &ProgramGraph{Title: "Test Program"}
	for _, title := range courseTitles {
		graph.Courses = append(graph.Courses, CourseGraph{Title: title})
	}

	programID, err := SaveProgram(db, graph)
	require.NoError(t, err)

	enrollmentID, err := EnrollUserInProgram(db, userID, programID, 0, "")
	require.NoError(t, err)

	return programID, enrollmentID
}

func TestLockStateFirstCourseAlwaysUnlocked(t *testing.T) {
	db := setupTestDB(t)
	_, enrollmentID := seedEnrolledProgram(t, db, 1, "A", "B")

	views := LoadCoursesWithLockState(db, 1, enrollmentID)
	require.Len(t, views, 2)
	assert.False(t, views[0].Locked)
	assert.True(t, views[1].Locked)
}

func TestLockStateTruthTable(t *testing.T) {
	db := setupTestDB(t)
	_, enrollmentID := seedEnrolledProgram(t, db, 1, "A", "B", "C", "D")

	// Position 0 at 100%, position 1 at 40%: partial progress must not unlock
	require.NoError(t, db.Model(&programModels.CourseProgress{}).
		Where("enrollment_id = ? AND position = ?", enrollmentID, 0).
		Update("progress", 100).Error)
	require.NoError(t, db.Model(&programModels.CourseProgress{}).
		Where("enrollment_id = ? AND position = ?", enrollmentID, 1).
		Update("progress", 40).Error)

	views := LoadCoursesWithLockState(db, 1, enrollmentID)
	require.Len(t, views, 4)
	assert.False(t, views[0].Locked, "position 0 is always unlocked")
	assert.False(t, views[1].Locked, "predecessor at exactly 100 unlocks")
	assert.True(t, views[2].Locked, "predecessor at 40 stays locked")
	assert.True(t, views[3].Locked)
}

func TestLockStateUnknownEnrollmentIsEmpty(t *testing.T) {
	db := setupTestDB(t)

	views := LoadCoursesWithLockState(db, 1, uuid.New())
	assert.Empty(t, views)
}

func TestMarkCourseCompleteNotEnrolled(t *testing.T) {
	db := setupTestDB(t)

	graph := sampleGraph()
	_, err := SaveProgram(db, graph)
	require.NoError(t, err)

	_, err = MarkCourseComplete(db, graph.Courses[0].ID, 42)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	var count int64
	db.Model(&programModels.CourseProgress{}).Count(&count)
	assert.Zero(t, count, "a failed completion must not create rows")
}

func TestSequentialUnlockScenario(t *testing.T) {
	db := setupTestDB(t)
	_, enrollmentID := seedEnrolledProgram(t, db, 7, "A", "B", "C")

	views := LoadCoursesWithLockState(db, 7, enrollmentID)
	require.Len(t, views, 3)
	assert.False(t, views[0].Locked)
	assert.True(t, views[1].Locked)
	assert.True(t, views[2].Locked)

	returnedEnrollment, err := MarkCourseComplete(db, views[0].CourseID, 7)
	require.NoError(t, err)
	assert.Equal(t, enrollmentID, returnedEnrollment)

	views = LoadCoursesWithLockState(db, 7, enrollmentID)
	require.Len(t, views, 3)
	assert.True(t, views[0].IsCompleted)
	assert.False(t, views[0].Locked)
	assert.EqualValues(t, 100, views[0].Progress)
	assert.False(t, views[1].Locked, "completing A unlocks B")
	assert.True(t, views[2].Locked, "C stays locked until B completes")
}

func TestMarkCourseCompleteCascadesEnrollmentProgress(t *testing.T) {
	db := setupTestDB(t)
	_, enrollmentID := seedEnrolledProgram(t, db, 3, "A", "B")

	views := LoadCoursesWithLockState(db, 3, enrollmentID)
	require.Len(t, views, 2)

	_, err := MarkCourseComplete(db, views[0].CourseID, 3)
	require.NoError(t, err)

	var enrollment programModels.Enrollment
	require.NoError(t, db.First(&enrollment, "id = ?", enrollmentID).Error)
	assert.InDelta(t, 50, enrollment.Progress, 0.01)
	assert.Nil(t, enrollment.CompletedAt)

	_, err = MarkCourseComplete(db, views[1].CourseID, 3)
	require.NoError(t, err)

	require.NoError(t, db.First(&enrollment, "id = ?", enrollmentID).Error)
	assert.InDelta(t, 100, enrollment.Progress, 0.01)
	assert.NotNil(t, enrollment.CompletedAt)
}
