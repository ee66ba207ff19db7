package view

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/derailed/tview"
	"github.com/wI2L/jsondiff"

	"github.com/sigap/sigap/internal/dao"
)

// Editor errors
var (
	ErrEditorCancelled = errors.New("editor cancelled")
	ErrNoChanges       = errors.New("no changes detected")
)

// serverManagedFields are stripped from the editable document; the backend
// owns them and rejects patches against them.
var serverManagedFields = []string{"id", "createdAt", "updatedAt"}

// EditSession represents an in-progress edit operation.
type EditSession struct {
	ResourceID *dao.ResourceID
	RecordID   string
	Original   map[string]interface{}
	Editable   map[string]interface{}
	TempFile   string
	ErrorMsg   string
}

// NewEditSession creates a new edit session.
func NewEditSession(rid *dao.ResourceID, id string) *EditSession {
	return &EditSession{
		ResourceID: rid,
		RecordID:   id,
	}
}

// FetchRecord fetches the record document through the DAO.
func (e *EditSession) FetchRecord(ctx context.Context, accessor dao.Accessor) error {
	rec, err := accessor.Get(ctx, e.RecordID)
	if err != nil {
		return err
	}

	e.Original = rec.GetFields()
	e.Editable = FilterEditableFields(e.Original)
	return nil
}

// FilterEditableFields strips server-managed fields from a document copy.
func FilterEditableFields(doc map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	for _, k := range serverManagedFields {
		delete(out, k)
	}
	return out
}

// StartEdit creates a temp file, spawns the editor, and returns the modified
// document. It suspends the TUI during editing.
func (e *EditSession) StartEdit(app *tview.Application) (map[string]interface{}, error) {
	tmpFile, err := os.CreateTemp("", "sigap-edit-*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	e.TempFile = tmpFile.Name()

	if err := e.writeJSONWithError(tmpFile); err != nil {
		tmpFile.Close()
		return nil, err
	}
	tmpFile.Close()

	exitCode, err := e.spawnEditor(app)
	if err != nil {
		return nil, fmt.Errorf("editor failed: %w", err)
	}
	if exitCode != 0 {
		return nil, ErrEditorCancelled
	}

	content, err := os.ReadFile(e.TempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}

	content = stripErrorComment(content)

	var modified map[string]interface{}
	if err := json.Unmarshal(content, &modified); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return modified, nil
}

// spawnEditor suspends the TUI and launches the editor.
func (e *EditSession) spawnEditor(app *tview.Application) (int, error) {
	editor := getEditor()

	var exitCode int
	suspended := app.Suspend(func() {
		cmd := exec.Command(editor, e.TempFile)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				exitCode = exitErr.ExitCode()
			} else {
				exitCode = 1
			}
		}
	})

	if !suspended {
		return 1, errors.New("failed to suspend application")
	}

	return exitCode, nil
}

// writeJSONWithError writes the document to the temp file, optionally with a
// retry error message at the top.
func (e *EditSession) writeJSONWithError(f *os.File) error {
	var buf bytes.Buffer

	if e.ErrorMsg != "" {
		buf.WriteString("// ERROR: " + e.ErrorMsg + "\n")
		buf.WriteString("// Perbaiki lalu simpan, atau simpan tanpa perubahan untuk batal.\n")
		buf.WriteString("// ---\n\n")
	}

	jsonBytes, err := json.MarshalIndent(e.Editable, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	buf.Write(jsonBytes)
	buf.WriteString("\n")

	_, err = f.Write(buf.Bytes())
	return err
}

// GeneratePatch creates an RFC 6902 patch document from original and
// modified, or ErrNoChanges when identical.
func GeneratePatch(original, modified map[string]interface{}) ([]byte, error) {
	patch, err := jsondiff.Compare(original, modified)
	if err != nil {
		return nil, fmt.Errorf("failed to generate patch: %w", err)
	}

	if len(patch) == 0 {
		return nil, ErrNoChanges
	}

	patchBytes, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch: %w", err)
	}

	return patchBytes, nil
}

// Cleanup removes the temporary file.
func (e *EditSession) Cleanup() {
	if e.TempFile != "" {
		os.Remove(e.TempFile)
		e.TempFile = ""
	}
}

// SetError sets the error message for display on retry.
func (e *EditSession) SetError(msg string) {
	e.ErrorMsg = msg
}

// getEditor returns the editor command to use.
// Checks $EDITOR, then $VISUAL, then falls back to vim, then nano.
func getEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	if _, err := exec.LookPath("vim"); err == nil {
		return "vim"
	}
	return "nano"
}

// stripErrorComment removes the error comment block from the top of content.
func stripErrorComment(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))
	startIdx := 0

	for i, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if bytes.HasPrefix(trimmed, []byte("//")) {
			startIdx = i + 1
			continue
		}
		break
	}

	if startIdx > 0 && startIdx < len(lines) {
		return bytes.Join(lines[startIdx:], []byte("\n"))
	}
	return content
}

// EditRecord performs the full edit flow for one record: fetch, edit in
// $EDITOR, diff, patch. This is the main entry point for the edit feature.
func EditRecord(ctx context.Context, app *tview.Application, factory dao.Factory, rid *dao.ResourceID, id string) error {
	accessor, err := dao.AccessorFor(factory, rid)
	if err != nil {
		return err
	}

	updater, ok := accessor.(dao.Updater)
	if !ok {
		return fmt.Errorf("edit not supported for %s", rid.String())
	}

	session := NewEditSession(rid, id)
	defer session.Cleanup()

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := session.FetchRecord(fetchCtx, accessor); err != nil {
		return fmt.Errorf("failed to fetch record: %w", err)
	}

	// Edit loop, retrying on server rejection.
	for {
		modified, err := session.StartEdit(app)
		if err != nil {
			return err
		}

		patch, err := GeneratePatch(session.Editable, modified)
		if err != nil {
			if errors.Is(err, ErrNoChanges) {
				// Saving unchanged after an error means cancel.
				if session.ErrorMsg != "" {
					return ErrEditorCancelled
				}
				return ErrNoChanges
			}
			return err
		}

		patchCtx, patchCancel := context.WithTimeout(ctx, 30*time.Second)
		err = updater.PatchOps(patchCtx, id, patch)
		patchCancel()

		if err != nil {
			session.SetError(err.Error())
			session.Editable = modified
			continue
		}

		return nil
	}
}
