package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/planetsim/internal/dynamo"
)

type ExportData struct {
	Run       RunMetadata     `json:"run"`
	Times     []float64       `json:"times"`
	Snapshots []ExportedFrame `json:"snapshots"`
}

type ExportedFrame struct {
	Time   float64        `json:"time"`
	Bodies []ExportedBody `json:"bodies"`
}

type ExportedBody struct {
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Distance float64 `json:"distance"`
}

func NewExportData(meta RunMetadata, result *dynamo.Result) ExportData {
	data := ExportData{
		Run:       meta,
		Times:     result.Times(),
		Snapshots: make([]ExportedFrame, len(result.Snapshots)),
	}

	for i, snap := range result.Snapshots {
		frame := ExportedFrame{Time: snap.Time, Bodies: make([]ExportedBody, len(snap.Pos))}
		for j := range snap.Pos {
			frame.Bodies[j] = ExportedBody{
				Name:     result.Names[j],
				X:        snap.Pos[j].X,
				Y:        snap.Pos[j].Y,
				VX:       snap.Vel[j].X,
				VY:       snap.Vel[j].Y,
				Distance: snap.Distance[j],
			}
		}
		data.Snapshots[i] = frame
	}
	return data
}

func ExportJSON(w io.Writer, meta RunMetadata, result *dynamo.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, result))
}
