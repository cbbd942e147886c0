package repository

import (
	"gorm.io/gorm"

	"codemingle/internal/model"
)

// Cascades are explicit so behaviour does not depend on the foreign key
// actions of whichever driver is in use. Every helper expects to run inside
// a transaction.

func deleteQuizzes(tx *gorm.DB, quizIDs []uint) error {
	if len(quizIDs) == 0 {
		return nil
	}
	if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&model.Question{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", quizIDs).Delete(&model.Quiz{}).Error
}

func deleteLessons(tx *gorm.DB, lessonIDs []uint) error {
	if len(lessonIDs) == 0 {
		return nil
	}
	var quizIDs []uint
	if err := tx.Model(&model.Quiz{}).Where("lesson_id IN ?", lessonIDs).Pluck("id", &quizIDs).Error; err != nil {
		return err
	}
	if err := deleteQuizzes(tx, quizIDs); err != nil {
		return err
	}
	if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	// enrollments survive their lesson
	if err := tx.Model(&model.Enrollment{}).Where("lesson_id IN ?", lessonIDs).
		Update("lesson_id", nil).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", lessonIDs).Delete(&model.Lesson{}).Error
}

// deleteByID removes one row and reports gorm.ErrRecordNotFound when nothing matched.
func deleteByID(tx *gorm.DB, value interface{}, id uint) error {
	res := tx.Delete(value, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
