// Package io provides JSON import and export for skeleton graphs, and TOML
// loading for rigid transforms.
//
// # Overview
//
// The JSON format is the save/load boundary of a [sparse.Graph]. It is
// designed for:
//
//   - Persisting extracted skeletons between runs
//   - Exchanging graphs with the HTTP server and the snapshot stores
//   - Exact round-trips: ids, adjacency order and cached edge points survive
//
// # JSON Format
//
//	{
//	  "vertices": [
//	    {"id": 0, "point": [0, 0, 0], "distance": 0.4, "edges": [0]},
//	    {"id": 1, "point": [1, 0, 0], "edges": [0]}
//	  ],
//	  "edges": [
//	    {"id": 0, "start": 0, "end": 1,
//	     "start_point": [0, 0, 0], "end_point": [1, 0, 0],
//	     "start_distance": 0.4}
//	  ]
//	}
//
// Vertex fields: id, point and edges are required; distance and subgraph_id
// default to zero. Edge fields: id, start, end, start_point and end_point are
// required; start_distance and end_distance default to zero.
//
// # Import
//
// [ReadJSON] and [ImportJSON] insert entities under their saved ids, advance
// the graph's id counters past them and validate adjacency. A file whose
// edges reference missing vertices is rejected. [ReadJSONUnchecked] and
// [ImportJSONUnchecked] skip that last check so damaged files can still be
// inspected.
//
// # Export
//
// [WriteJSON], [ExportJSON] and [MarshalGraph] write entities in ascending id
// order, so equal graphs produce byte-identical output.
//
// # Transforms
//
// [ReadTransform] and [LoadTransform] read a rigid transform from a TOML list
// of [[step]] tables. Steps compose in file order. See [ReadTransform] for the
// keys.
//
// [sparse.Graph]: github.com/matzehuels/skelgraph/pkg/sparse.Graph
package io
