package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractElements_JavaScriptTopLevel(t *testing.T) {
	content := `
export function createServer() {}
export class Router {}
const config = loadConfig();
`
	el := ExtractElements(".js", content)
	assert.Equal(t, []string{"createServer"}, el.Functions)
	assert.Equal(t, []string{"Router"}, el.Classes)
	assert.Equal(t, []string{"config"}, el.Variables)
}

func TestExtractElements_PythonTopLevel(t *testing.T) {
	content := `
def run():
    pass

class Worker:
    pass

timeout = 30
`
	el := ExtractElements(".py", content)
	assert.Equal(t, []string{"run"}, el.Functions)
	assert.Equal(t, []string{"Worker"}, el.Classes)
	assert.Contains(t, el.Variables, "timeout")
}

func TestExtractElements_JavaExcludesControlKeywords(t *testing.T) {
	content := `
public class UserService {
    private String name;
    public void save() {
        if (name != null) {
            for (int i = 0; i < 1; i++) {
            }
        }
    }
}
`
	el := ExtractElements(".java", content)
	assert.Contains(t, el.Classes, "UserService")
	assert.Contains(t, el.Functions, "save")
	assert.NotContains(t, el.Functions, "if")
	assert.NotContains(t, el.Functions, "for")
}

func TestExtractElements_NamesAreDisjointAcrossBuckets(t *testing.T) {
	content := `
function helper() {}
const helper2 = 1;
`
	el := ExtractElements(".js", content)
	assert.Equal(t, []string{"helper"}, el.Functions)
	assert.Equal(t, []string{"helper2"}, el.Variables)
}

func TestExtractElements_UnsupportedExtensionYieldsEmpty(t *testing.T) {
	el := ExtractElements(".rs", "fn main() {}")
	assert.Empty(t, el.Functions)
	assert.Empty(t, el.Classes)
	assert.Empty(t, el.Variables)
}
