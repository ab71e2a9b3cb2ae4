package backup

import (
	"archive/zip"
	"io"
	"os"
)

func zipFiles(outputFilepath string, inputFilepaths ...string) error {
	f, err := os.Create(outputFilepath)
	if err != nil {
		return err
	}
	defer f.Close()
	w := zip.NewWriter(f)
	defer w.Close()
	for _, filepath := range inputFilepaths {
		err = addFile(w, filepath)
		if err != nil {
			return err
		}
	}
	return nil
}

func addFile(w *zip.Writer, filepath string) error {
	f, err := os.Open(filepath)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	// FileInfoHeader only keeps the basename, which is what we
	// want for a single cache file archive.
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Method = zip.Deflate
	ioWriter, err := w.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(ioWriter, f)
	return err
}
