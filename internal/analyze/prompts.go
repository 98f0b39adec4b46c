package analyze

import (
	"encoding/json"
	"fmt"

	"github.com/genforge-labs/genforge/internal/structure"
)

func analysisPrompt(ps *structure.ProjectStructure, samples []codeSample) string {
	paths, _ := json.MarshalIndent(ps.FilePaths(), "", "  ")
	enc, _ := json.MarshalIndent(samples, "", "  ")
	return fmt.Sprintf(`You are an expert in code review and defect detection. Analyze the following project:

Project name: %s
Description: %s

File structure:
%s

Code samples:
%s

Identify every potential problem in this code, in particular:
1. Bugs or programming errors
2. Security problems
3. Bad coding practices
4. Architectural inconsistencies
5. Duplicated or redundant code
6. Performance problems

Respond with a structured JSON containing your analysis:
{
  "issues": [
    {
      "file": "path/to/file.ext",
      "type": "kind of problem (bug, security, etc.)",
      "severity": "critical|high|medium|low",
      "description": "Detailed description of the problem",
      "suggestion": "Suggestion for fixing the problem"
    }
  ],
  "recommendations": [
    {
      "type": "improvement|refactoring|architecture|test",
      "description": "Description of the recommendation",
      "priority": "high|medium|low"
    }
  ],
  "overall_quality": "excellent|good|average|poor",
  "summary": "Overall summary of the project quality and the main problems"
}`, ps.Name, ps.Description, paths, enc)
}

func fixPrompt(fileName, problem, content string, ps *structure.ProjectStructure) string {
	if ps != nil {
		return fmt.Sprintf(`Fix the code of the file %q which has the following problem:
%s

Project description: %s

Here is the current code:
%s

Respond ONLY with the corrected code, without any explanation or markdown formatting.
Make sure the solution specifically fixes the described problem while keeping every other behavior intact.`, fileName, problem, ps.Description, content)
	}
	return fmt.Sprintf(`Fix the code of the file %q which has the following problem:
%s

Here is the current code:
%s

Respond ONLY with the corrected code, without any explanation or markdown formatting.
Make sure the solution specifically fixes the described problem while keeping every other behavior intact.`, fileName, problem, content)
}
