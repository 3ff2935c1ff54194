package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/yangreport/internal/common"
)

const testSchema = `
gnmi_operations:
  Set_and_Get:
    type:
      ONCE:
        current_status: supported
        operation_validations_sequence: [basic]
gnmi_operation_validations:
  basic:
    current_status: supported
    validations: [Status_Code]
validations:
  Status_Code:
    current_status: supported
    description: Status code
    name: status-code
`

const systemResult = `{
	"labels": ["openconfig_system"],
	"tests_total": 2, "tests_pass": 1, "tests_fail": 1,
	"tests_total_validations": 2, "tests_passed_validations": 1, "tests_failed_validations": 1,
	"results": [
		{
			"test_name": "Set <- /system/config/hostname -> ONCE",
			"test_id": "TC_1",
			"success": true,
			"results": [{
				"log": "set ok",
				"total_validations": 1,
				"passed_validations": 1,
				"validations": {"Set_and_Get": {"type": {"ONCE": [{"Status_Code": "PASS"}]}, "encoding": "JSON_IETF"}}
			}]
		},
		{
			"test_name": "Set <- /system/config/domain-name -> ONCE",
			"test_id": "TC_2",
			"success": false,
			"results": [{
				"log": "value mismatch",
				"total_validations": 1,
				"failed_validations": 1,
				"validations": {"Set_and_Get": {"type": {"ONCE": [{"Status_Code": "FAIL"}]}, "encoding": "JSON_IETF"}}
			}]
		}
	]
}`

const interfacesResult = `[{
	"labels": ["openconfig-interfaces"],
	"tests_total": 1, "tests_pass": 1, "tests_fail": 0,
	"results": [{
		"test_name": "Set <- /interfaces/interface/config/mtu -> ONCE",
		"test_id": "TC_1",
		"success": true,
		"results": [{
			"log": "mtu ok",
			"total_validations": 1,
			"passed_validations": 1,
			"validations": {"Set_and_Get": {"type": {"ONCE": [{"Status_Code": "PASS"}]}, "encoding": "JSON_IETF"}}
		}]
	}]
}]`

const systemLog = `[TESTCASE-BEGIN]
+----------------------------------------------------+
| TC_1 -> Set <- /system/config/hostname -> ONCE     |
+----------------------------------------------------+
SET request sent
TESTCASE RESULT - PASS
[TESTCASE-BEGIN]
+----------------------------------------------------+
| TC_2 -> Set <- /system/config/domain-name -> ONCE  |
+----------------------------------------------------+
SET request sent
TESTCASE RESULT - FAIL
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestApp(t *testing.T, configure func(*common.Config)) *App {
	t.Helper()
	config := common.NewDefaultConfig()
	config.Output.Dir = filepath.Join(t.TempDir(), "logs")
	config.Inputs.Schema = ""
	if configure != nil {
		configure(config)
	}

	application, err := New(config, arbor.NewNoOpLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })
	return application
}
