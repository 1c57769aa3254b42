package blur

// WidthCorrection applies the empirical calibration to a raw score for an
// image of the given original size. The steps run in order:
//
//  1. Multiply AvgEdgeWidthPerc by the width bucket factor: wider images
//     have wider edges in pixels at the same perceived sharpness.
//  2. Subtract EdgeCountBias when NumEdges < EdgeCountBiasThreshold.
//  3. For the legacy sensor resolution, map a still-negative score through
//     score*Scale + Offset.
//  4. Force LowEdgeScore when NumEdges < LowEdgeCountThreshold; too few edges
//     make the width statistic unreliable.
//
// The input is not modified.
func WidthCorrection(score Score, width, height int, cfg Config) Score {
	s := score
	s.AvgEdgeWidthPerc *= cfg.widthFactor(width)

	if s.NumEdges < cfg.EdgeCountBiasThreshold {
		s.AvgEdgeWidthPerc -= cfg.EdgeCountBias
	}

	ls := cfg.LegacySensor
	if width == ls.Width && height == ls.Height && s.AvgEdgeWidthPerc < 0 {
		s.AvgEdgeWidthPerc = s.AvgEdgeWidthPerc*ls.Scale + ls.Offset
	}

	if s.NumEdges < cfg.LowEdgeCountThreshold {
		s.AvgEdgeWidthPerc = cfg.LowEdgeScore
	}
	return s
}
