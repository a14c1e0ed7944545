package recorder

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"upflow/internal/model"
)

// JSON 文件记录器：每行一条执行记录
type JSONFileRecorder struct {
	Path string

	mu sync.Mutex
}

func NewJSONFileRecorder(path string) *JSONFileRecorder {
	return &JSONFileRecorder{Path: path}
}

func (r *JSONFileRecorder) Record(record *model.ExecutionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	file, err := os.OpenFile(r.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// ReadRecent 读取最近n条记录，新的在前。文件不存在时返回空
func (r *JSONFileRecorder) ReadRecent(n int) ([]model.ExecutionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.Open(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var records []model.ExecutionRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec model.ExecutionRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			// 跳过损坏的行，不让一条坏记录废掉整个查询
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	// 反转为新的在前
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}
