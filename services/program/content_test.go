package program

import (
	"testing"
	"time"

	programModels "peakform/models/program"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph() *ProgramGraph {
	return &ProgramGraph{
		Title:      "Foundation Strength",
		Duration:   "8 weeks",
		Difficulty: "Beginner",
		Focus:      "Strength",
		Cost:       "Free",
		Courses: []CourseGraph{
			{
				Title:   "Mobility Basics",
				Options: []string{"No equipment", "Low impact"},
				Videos: []VideoGraph{
					{Title: "Hip Openers", VideoURL: "https://cdn.test/hip.mp4", Duration: "5:5"},
					{Title: "Shoulder Flow", VideoURL: "https://cdn.test/shoulder.mp4", Duration: "3:30"},
				},
			},
			{
				Title: "Bodyweight Strength",
				Videos: []VideoGraph{
					{Title: "Push Progressions", VideoURL: "https://cdn.test/push.mp4", Duration: "10:00"},
				},
			},
		},
	}
}

func TestSaveProgramRequiresTitle(t *testing.T) {
	db := setupTestDB(t)

	_, err := SaveProgram(db, &ProgramGraph{})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = SaveProgram(db, nil)
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestSaveAndLoadProgramPreservesOrder(t *testing.T) {
	db := setupTestDB(t)

	// Course titles deliberately sort against their array order so any
	// accidental alphabetical or insertion ordering would be caught
	graph := &ProgramGraph{
		Title: "Ordered Program",
		Courses: []CourseGraph{
			{Title: "Zeta", Videos: []VideoGraph{
				{Title: "z-second", VideoURL: "https://cdn.test/1.mp4", Duration: "1:00"},
				{Title: "a-first", VideoURL: "https://cdn.test/2.mp4", Duration: "2:00"},
			}},
			{Title: "Alpha"},
			{Title: "Mid"},
		},
	}

	id, err := SaveProgram(db, graph)
	require.NoError(t, err)

	loaded := LoadProgram(db, id)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Courses, 3)
	assert.Equal(t, "Zeta", loaded.Courses[0].Title)
	assert.Equal(t, "Alpha", loaded.Courses[1].Title)
	assert.Equal(t, "Mid", loaded.Courses[2].Title)

	require.Len(t, loaded.Courses[0].Videos, 2)
	assert.Equal(t, "z-second", loaded.Courses[0].Videos[0].Title)
	assert.Equal(t, "a-first", loaded.Courses[0].Videos[1].Title)

	// Re-save with the courses reordered: order_index must follow the new
	// array order, and a reload reflects it
	graph.Courses[0], graph.Courses[2] = graph.Courses[2], graph.Courses[0]
	_, err = SaveProgram(db, graph)
	require.NoError(t, err)

	reloaded := LoadProgram(db, id)
	require.NotNil(t, reloaded)
	assert.Equal(t, "Mid", reloaded.Courses[0].Title)
	assert.Equal(t, "Alpha", reloaded.Courses[1].Title)
	assert.Equal(t, "Zeta", reloaded.Courses[2].Title)
}

func TestSaveProgramConvertsDurations(t *testing.T) {
	db := setupTestDB(t)

	id, err := SaveProgram(db, sampleGraph())
	require.NoError(t, err)

	var video programModels.Video
	require.NoError(t, db.Where("title = ?", "Hip Openers").First(&video).Error)
	assert.Equal(t, 305, video.DurationSeconds)

	loaded := LoadProgram(db, id)
	require.NotNil(t, loaded)
	assert.Equal(t, "5:05", loaded.Courses[0].Videos[0].Duration)
}

func TestSaveProgramSkipsVideosWithoutURL(t *testing.T) {
	db := setupTestDB(t)

	graph := sampleGraph()
	graph.Courses[0].Videos = append(graph.Courses[0].Videos, VideoGraph{
		Title:    "Unuploaded",
		Duration: "2:00",
	})

	_, err := SaveProgram(db, graph)
	require.NoError(t, err)

	var count int64
	db.Model(&programModels.Video{}).Where("title = ?", "Unuploaded").Count(&count)
	assert.Zero(t, count)

	db.Model(&programModels.Video{}).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestSaveProgramUpsertsExistingRows(t *testing.T) {
	db := setupTestDB(t)

	graph := sampleGraph()
	id, err := SaveProgram(db, graph)
	require.NoError(t, err)

	graph.Courses[0].Title = "Mobility Basics v2"
	graph.Courses[0].Videos[0].Duration = "6:00"
	_, err = SaveProgram(db, graph)
	require.NoError(t, err)

	var courseCount int64
	db.Model(&programModels.Course{}).Count(&courseCount)
	assert.EqualValues(t, 2, courseCount)

	loaded := LoadProgram(db, id)
	require.NotNil(t, loaded)
	assert.Equal(t, "Mobility Basics v2", loaded.Courses[0].Title)
	assert.Equal(t, "6:00", loaded.Courses[0].Videos[0].Duration)
}

func TestLoadProgramMissingOrInactive(t *testing.T) {
	db := setupTestDB(t)

	assert.Nil(t, LoadProgram(db, uuid.New()))

	id, err := SaveProgram(db, sampleGraph())
	require.NoError(t, err)

	require.True(t, DeleteProgram(db, id))
	assert.Nil(t, LoadProgram(db, id))
}

func TestGetAllProgramsActiveNewestFirst(t *testing.T) {
	db := setupTestDB(t)

	older := programModels.Program{Title: "Older", IsActive: true, CreatedAt: time.Now().Add(-time.Hour)}
	newer := programModels.Program{Title: "Newer", IsActive: true, CreatedAt: time.Now()}
	retired := programModels.Program{Title: "Retired", IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&retired).Error)
	require.True(t, DeleteProgram(db, retired.ID))

	programs := GetAllPrograms(db)
	require.Len(t, programs, 2)
	assert.Equal(t, "Newer", programs[0].Title)
	assert.Equal(t, "Older", programs[1].Title)
}

func TestDeleteVideoIsHardDelete(t *testing.T) {
	db := setupTestDB(t)

	_, err := SaveProgram(db, sampleGraph())
	require.NoError(t, err)

	var video programModels.Video
	require.NoError(t, db.Where("title = ?", "Push Progressions").First(&video).Error)

	require.True(t, DeleteVideo(db, video.ID))

	var count int64
	db.Model(&programModels.Video{}).Where("id = ?", video.ID).Count(&count)
	assert.Zero(t, count)
}
