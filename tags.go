// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

// UnknownPrefix is used as prefix for unknown tags.
const UnknownPrefix = "UnknownTag_"

const (
	tagImageWidth       = 0x0100
	tagImageHeight      = 0x0101
	tagMake             = 0x010f
	tagModel            = 0x0110
	tagStripOffsets     = 0x0111
	tagStripByteCounts  = 0x0117
	tagDateTime         = 0x0132
	tagSubIFDs          = 0x014a
	tagJPEGOffset       = 0x0201
	tagJPEGLength       = 0x0202
	tagExifIFDPointer   = 0x8769
	tagGPSIFDPointer    = 0x8825
	tagMakerNote        = 0x927c
	tagDateTimeOriginal = 0x9003
	tagInteropPointer   = 0xa005
)

var (
	fieldsTIFF = map[uint16]string{0x0001: "interop_index", 0x0002: "interop_version", 0x000b: "processing_software", 0x00fe: "subfile_type", 0x0100: "image_width", 0x0101: "image_height", 0x0102: "bits_per_sample", 0x0103: "compression", 0x0106: "photometric_interpretation", 0x010f: "make", 0x0110: "model", 0x0111: "strip_offset", 0x0112: "orientation", 0x0115: "samples_per_pixel", 0x0116: "rows_per_strip", 0x0117: "strip_byte_counts", 0x011a: "x_resolution", 0x011b: "y_resolution", 0x011c: "planar_configuration", 0x0128: "resolution_unit", 0x0131: "software", 0x0132: "datetime", 0x014a: "sub_ifds", 0x0201: "jpeg_offset", 0x0202: "jpeg_length", 0x4010: "custom_picture_style_file_name", 0x4020: "ambience_info", 0x828d: "cfa_repeat_pattern_dim", 0x828e: "cfa_pattern_two", 0x829a: "exposure_time", 0x829d: "fnumber", 0x8769: "exif", 0x8825: "gps_data", 0x9003: "datetime_original", 0x9004: "datetime_digitized", 0x927c: "makernote", 0xa005: "interop", 0xc633: "shadow_scale", 0xc634: "dng_private_data", 0xc635: "makernote_safety", 0xc640: "raw_image_segmentation", 0xfdea: "lens", 0xfe4c: "raw_file", 0xfe4d: "converter", 0xfe4e: "white_balance", 0xfe51: "exposure", 0xfe52: "shadows", 0xfe53: "brightness", 0xfe54: "contrast", 0xfe55: "saturation", 0xfe56: "sharpness", 0xfe57: "smoothness", 0xfe58: "moire_filter"}

	// CR2 shares one table between the main directories and the Canon makernote.
	fieldsCR2 = map[uint16]string{0x0001: "canon_camera_settings", 0x0002: "canon_focal_length", 0x0004: "canon_shot_info", 0x0005: "canon_panorama", 0x0006: "canon_image_type", 0x0007: "canon_firmware_version", 0x0008: "file_number", 0x0009: "owner_name", 0x000c: "serial_number", 0x000d: "canon_camera_info", 0x000e: "canon_file_length", 0x000f: "custom_functions", 0x0010: "canon_model_id", 0x0011: "canon_movie_info", 0x0012: "canon_af_info", 0x0013: "thumbnail_image_valid_area", 0x0015: "serial_number_format", 0x001a: "super_macro", 0x001c: "date_stamp_mode", 0x001d: "my_colors", 0x001e: "firmware_revision", 0x0023: "categories", 0x0024: "face_detection_1", 0x0025: "face_detection_2", 0x0026: "canon_af_info_2", 0x0027: "contrast_info", 0x0028: "image_unique_id", 0x002f: "face_detection_3", 0x0035: "time_info", 0x003c: "canon_af_info_3", 0x0081: "raw_data_offset", 0x0083: "original_decision_data_offset", 0x0095: "lens_model", 0x0096: "serial_info", 0x00ae: "color_temperature", 0x00b4: "color_space", 0x0100: "image_width", 0x0101: "image_length", 0x0102: "bits_per_sample", 0x0103: "compression", 0x0106: "photometric_interpretation", 0x010f: "make", 0x0110: "model", 0x0111: "strip_offset", 0x0112: "orientation", 0x0115: "samples_per_pixel", 0x0116: "row_per_strip", 0x0117: "strip_byte_counts", 0x011a: "x_resolution", 0x011b: "y_resolution", 0x011c: "planar_configuration", 0x0128: "resolution_unit", 0x0132: "datetime", 0x0201: "thumbnail_offset", 0x0202: "thumbnail_length", 0x4010: "custom_picture_style_file_name", 0x4020: "ambience_info", 0x829a: "exposure_time", 0x829d: "fnumber", 0x8769: "exif", 0x8825: "gps_data", 0x927c: "makernote", 0xc640: "cr2_slice"}

	fieldsNEF = map[uint16]string{0x00fe: "subfile_type", 0x0100: "image_width", 0x0101: "image_height", 0x0102: "bits_per_sample", 0x0103: "compression", 0x0106: "photometric_interpretation", 0x010f: "make", 0x0110: "model", 0x0111: "strip_offset", 0x0115: "samples_per_pixel", 0x0116: "rows_per_strip", 0x0117: "strip_byte_counts", 0x011a: "x_resolution", 0x011b: "y_resolution", 0x011c: "planar_configuration", 0x0128: "resolution_unit", 0x0132: "datetime", 0x014a: "sub_ifds", 0x0201: "jpeg_offset", 0x0202: "jpeg_length", 0x0213: "ycb_cr_positioning", 0x0214: "reference_black_white", 0x828d: "cfa_repeat_pattern_dim", 0x828e: "cfa_pattern_two", 0x8769: "exif", 0x9003: "datetime_original", 0x9217: "sensing_method", 0x9286: "user_comment"}
)

var (
	subDirectoriesTIFF = map[uint16][]string{
		tagExifIFDPointer: nil,
		tagGPSIFDPointer:  nil,
		tagInteropPointer: nil,
		tagSubIFDs:        nil,
	}

	subDirectoriesCR2 = map[uint16][]string{
		tagExifIFDPointer: nil,
		tagMakerNote:      nil,
	}

	subDirectoriesNEF = map[uint16][]string{
		tagExifIFDPointer: nil,
		tagSubIFDs:        {"preview_image", "raw_data"},
	}
)
