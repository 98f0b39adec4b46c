package structure

import "testing"

func TestValidate_ValidStructure(t *testing.T) {
	res, err := Validate(`{"name": "todo_app", "files": [{"path": "todo.py"}]}`)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !res.Valid {
		t.Errorf("expected valid, got issues: %+v", res.Issues)
	}
}

func TestValidate_FileWithoutPath(t *testing.T) {
	res, err := Validate(`{"name": "x", "files": [{"description": "no path"}]}`)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if res.Valid {
		t.Fatal("expected schema violation for file without path")
	}
	if len(res.Issues) == 0 {
		t.Fatal("expected at least one issue")
	}
}

func TestValidate_CommandsMappingShapeAccepted(t *testing.T) {
	res, err := Validate(`{"name": "x", "commands": {"start": "python app.py"}}`)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !res.Valid {
		t.Errorf("mapping-shaped commands should validate, got: %+v", res.Issues)
	}
}

func TestValidate_WrongTypes(t *testing.T) {
	res, err := Validate(`{"name": 42, "folders": "src"}`)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if res.Valid {
		t.Fatal("expected violations for wrong field types")
	}
}
