// Package axis maps between frequencies, FFT bins and rows of a
// logarithmic frequency axis. Low frequencies sit at the bottom of the
// image (row = height) and high frequencies at the top (row = 0).
//
// Callers guarantee 0 < minFreq < maxFreq and height >= 2; the mapping
// does not re-validate these on every pixel.
package axis

import "math"

// FrequencyToRow returns the vertical coordinate of freq.
// minFreq maps to height, maxFreq maps to 0 and the geometric mean to height/2.
func FrequencyToRow(freq float64, height int, minFreq, maxFreq float64) float64 {
	logMin := math.Log2(minFreq)
	logMax := math.Log2(maxFreq)
	return float64(height) * (1 - (math.Log2(freq)-logMin)/(logMax-logMin))
}

// RowToFrequency is the inverse used when sampling pixel rows: row height-1
// maps to minFreq and row 0 to maxFreq.
func RowToFrequency(row float64, height int, minFreq, maxFreq float64) float64 {
	h := float64(height - 1)
	return minFreq * math.Pow(maxFreq/minFreq, (h-row)/h)
}

// BinForFrequency returns the spectrum column for freq, clamped to [0, numBins-1]
func BinForFrequency(freq float64, numBins, sampleRate int) int {
	nyquist := float64(sampleRate) / 2
	bin := int(math.Round(freq * float64(numBins) / nyquist))
	if bin >= numBins {
		bin = numBins - 1
	}
	if bin < 0 {
		bin = 0
	}
	return bin
}
