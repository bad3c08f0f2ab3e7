package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionCourse   = "course"
	actionSteps    = "steps"
	actionLesson   = "lesson"
	actionTest     = "test"
	actionQuiz     = "quiz"
	actionProgress = "progress"
	actionReset    = "reset"
)

// Quiz sub-actions.
const (
	quizOption = "opt"
	quizPiece  = "piece"
	quizUndo   = "undo"
	quizCheck  = "check"
	quizNext   = "next"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

var errBadCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns params[i] as a non-negative int.
func (cd callbackData) intParam(i int) (int, error) {
	if i >= len(cd.Params) {
		return 0, errBadCallback
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil || n < 0 {
		return 0, errBadCallback
	}
	return n, nil
}

// quizCallback is a decoded quiz button press.
type quizCallback struct {
	SessionID string
	Op        string
	Index     int // option or piece index
}

func parseQuizCallback(cd callbackData) (quizCallback, error) {
	if cd.Action != actionQuiz || len(cd.Params) < 2 || cd.Params[0] == "" {
		return quizCallback{}, errBadCallback
	}

	qc := quizCallback{SessionID: cd.Params[0], Op: cd.Params[1]}

	switch qc.Op {
	case quizOption, quizPiece:
		n, err := cd.intParam(2)
		if err != nil {
			return quizCallback{}, err
		}
		qc.Index = n
	case quizUndo, quizCheck, quizNext:
	default:
		return quizCallback{}, errBadCallback
	}

	return qc, nil
}

// buildCourseCallback builds callback data for selecting a course.
func buildCourseCallback(code string) string {
	return callbackData{Action: actionCourse, Params: []string{code}}.encode()
}

func buildStepsCallback() string {
	return actionSteps
}

// buildLessonCallback builds callback data for opening the lesson of a step.
func buildLessonCallback(stepIdx int) string {
	return callbackData{Action: actionLesson, Params: []string{strconv.Itoa(stepIdx)}}.encode()
}

// buildTestCallback builds callback data for starting the test of a step.
func buildTestCallback(stepIdx int) string {
	return callbackData{Action: actionTest, Params: []string{strconv.Itoa(stepIdx)}}.encode()
}

func buildQuizOptionCallback(sessionID string, option int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{sessionID, quizOption, strconv.Itoa(option)},
	}.encode()
}

func buildQuizPieceCallback(sessionID string, piece int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{sessionID, quizPiece, strconv.Itoa(piece)},
	}.encode()
}

// buildQuizActionCallback builds callback data for undo, check and next buttons.
func buildQuizActionCallback(sessionID, op string) string {
	return callbackData{Action: actionQuiz, Params: []string{sessionID, op}}.encode()
}

// buildProgressCallback builds callback data for opening the progress view.
func buildProgressCallback() string {
	return actionProgress
}

func buildResetConfirmCallback(courseCode string) string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm, courseCode}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
